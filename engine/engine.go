// Package engine hosts the top-level loop: it owns the window, drives every
// scene's update and render phases from the window's message loop, and reports
// frame statistics through the profiler.
//
// The loop is cooperative and single-threaded. Each message loop iteration
// runs one full frame on the window's thread, so scene, simulation, and GPU
// work never race each other. A panic inside a frame halts the loop instead
// of carrying torn state into the next frame.
package engine

import (
	"log"
	"sort"
	"time"

	"github.com/Carmen-Shannon/kinesis-go/engine/profiler"
	"github.com/Carmen-Shannon/kinesis-go/engine/scene"
	"github.com/Carmen-Shannon/kinesis-go/engine/window"
)

// defaultMaxDeltaTime caps the frame delta so a long stall (debugger pause,
// window drag) does not step the simulation by seconds at once.
const defaultMaxDeltaTime = float32(0.1)

// engine implements the Engine interface.
type engine struct {
	window window.Window

	scenes map[int]scene.Scene

	profiler         *profiler.Profiler
	profilingEnabled bool

	maxDeltaTime float32

	running  bool
	lastTick time.Time
}

// Engine is the main entry point. It orchestrates the frame loop and window
// management; scenes are keyed by z-index and processed in ascending order.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// AddScene registers a scene at the given z-index key.
	// Scenes are processed in ascending key order each frame.
	//
	// Parameters:
	//   - key: the z-index determining processing order (lower first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Run starts the frame loop. Blocks until the window closes or a frame
	// panics. Panics if no window was configured.
	Run()

	// Quit stops the frame loop and closes the window. Safe to call from
	// within a frame.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		scenes:       make(map[int]scene.Scene),
		profiler:     profiler.NewProfiler(),
		maxDeltaTime: defaultMaxDeltaTime,
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

func (e *engine) Run() {
	if e.window == nil {
		panic("engine: a window is required to run")
	}

	e.window.SetResizeCallback(func(width, height int) {
		if width <= 0 || height <= 0 {
			return
		}
		for _, s := range e.scenes {
			if r := s.Renderer(); r != nil {
				r.Resize(width, height)
			}
			if c := s.Camera(); c != nil {
				c.SetAspect(float32(width) / float32(height))
			}
		}
	})
	e.window.SetKeyDownCallback(func(keyCode uint32) {
		for _, s := range e.scenes {
			s.HandleKey(keyCode, true)
		}
	})
	e.window.SetKeyUpCallback(func(keyCode uint32) {
		for _, s := range e.scenes {
			s.HandleKey(keyCode, false)
		}
	})
	e.window.SetScrollCallback(func(delta float32) {
		for _, s := range e.scenes {
			if c := s.Camera(); c != nil {
				if ctrl := c.Controller(); ctrl != nil {
					ctrl.Zoom(delta)
				}
			}
		}
	})

	e.running = true
	e.lastTick = time.Now()
	e.window.SetUpdateCallback(e.tick)
	e.window.ProcessMessages()
	e.running = false
}

func (e *engine) Quit() {
	e.running = false
	if e.window != nil {
		_ = e.window.Close()
	}
}

// tick runs one full frame: update and render every active scene in ascending
// z-index order. A panic anywhere in the frame halts the loop; continuing
// after a partial frame would advance scenes against torn simulation state.
func (e *engine) tick() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("frame halted by panic: %v", r)
			e.Quit()
		}
	}()

	if !e.running {
		return
	}

	now := time.Now()
	dt := float32(now.Sub(e.lastTick).Seconds())
	e.lastTick = now
	if dt > e.maxDeltaTime {
		dt = e.maxDeltaTime
	}

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	for _, k := range keys {
		s := e.scenes[k]
		if !s.Active() {
			continue
		}

		updateStart := time.Now()
		s.Update(dt)
		renderStart := time.Now()
		if err := s.Render(); err != nil {
			log.Printf("scene %s render failed: %v", s.Name(), err)
			e.Quit()
			return
		}

		if e.profilingEnabled {
			e.profiler.Observe("update", renderStart.Sub(updateStart))
			e.profiler.Observe("render", time.Since(renderStart))
		}
	}

	if e.profilingEnabled {
		e.profiler.Tick()
	}
}
