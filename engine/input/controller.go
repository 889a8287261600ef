// Package input translates abstract key events into movement and force
// commands. Controllers accumulate held keys in a set and derive continuous
// motion from that set each update, so multi-key combinations compose
// additively and motion stays framerate-independent.
package input

import "sync"

// Controller is the capability contract for input drivers. HandleInput
// records key transitions; Update converts the currently-held set into motion
// for the controller's target. Exactly one controller is active on a scene at
// a time; swapping is an explicit scene operation.
type Controller interface {
	// HandleInput records a key press or release.
	//
	// Parameters:
	//   - key: the virtual key code
	//   - pressed: true on press, false on release
	HandleInput(key uint32, pressed bool)

	// Update derives motion from the currently-held keys.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	Update(deltaTime float32)
}

// keySet is the shared held-key accumulator. Safe for concurrent use so
// window callbacks and the frame loop can touch it from different goroutines.
type keySet struct {
	mu   sync.Mutex
	held map[uint32]bool
}

func newKeySet() *keySet {
	return &keySet{held: make(map[uint32]bool)}
}

func (k *keySet) set(key uint32, pressed bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if pressed {
		k.held[key] = true
	} else {
		delete(k.held, key)
	}
}

func (k *keySet) down(key uint32) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.held[key]
}

// axis returns +1 when only pos is held, -1 when only neg is held, and 0
// otherwise, so opposing keys cancel.
func (k *keySet) axis(pos, neg uint32) float32 {
	k.mu.Lock()
	defer k.mu.Unlock()
	var v float32
	if k.held[pos] {
		v++
	}
	if k.held[neg] {
		v--
	}
	return v
}
