package input

import (
	"github.com/Carmen-Shannon/kinesis-go/common"
	"github.com/Carmen-Shannon/kinesis-go/engine/camera"
)

// FreeFlyController drives a camera controller by planar translation: W/S
// dolly forward and back, A/D strafe, Q/E move down and up. Holding shift
// doubles the speed.
type FreeFlyController struct {
	keys   *keySet
	target camera.Controller

	// Speed scales all translation, in units per second before the
	// controller's own pan speed is applied.
	Speed float32
}

var _ Controller = &FreeFlyController{}

// NewFreeFlyController creates a FreeFlyController over the given camera
// controller. Panics if target is nil.
//
// Parameters:
//   - target: the camera controller to translate
//
// Returns:
//   - *FreeFlyController: the newly created controller
func NewFreeFlyController(target camera.Controller) *FreeFlyController {
	if target == nil {
		panic("input: free fly controller requires a camera controller")
	}
	return &FreeFlyController{
		keys:   newKeySet(),
		target: target,
		Speed:  1.0,
	}
}

func (f *FreeFlyController) HandleInput(key uint32, pressed bool) {
	f.keys.set(key, pressed)
}

func (f *FreeFlyController) Update(deltaTime float32) {
	speed := f.Speed * deltaTime
	if f.keys.down(common.KeyLeftShift) || f.keys.down(common.KeyRightShift) {
		speed *= 2
	}

	if v := f.keys.axis(common.KeyW, common.KeyS); v != 0 {
		f.target.PanForward(v * speed)
	}
	if v := f.keys.axis(common.KeyD, common.KeyA); v != 0 {
		f.target.PanRight(v * speed)
	}
	if v := f.keys.axis(common.KeyE, common.KeyQ); v != 0 {
		f.target.PanUp(v * speed)
	}
}
