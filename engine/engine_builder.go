package engine

import (
	"github.com/Carmen-Shannon/kinesis-go/engine/scene"
	"github.com/Carmen-Shannon/kinesis-go/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options.
type EngineBuilderOption func(*engine)

// WithWindow sets the window the engine runs its frame loop against.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScene registers a scene at the given z-index key during engine
// construction. Scenes are processed in ascending key order each frame.
//
// Parameters:
//   - key: the z-index determining processing order (lower first)
//   - s: the Scene to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithMaxDeltaTime sets the frame delta cap in seconds. Values <= 0 keep the
// default.
//
// Parameters:
//   - seconds: the maximum per-frame delta
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMaxDeltaTime(seconds float32) EngineBuilderOption {
	return func(e *engine) {
		if seconds <= 0 {
			return
		}
		e.maxDeltaTime = seconds
	}
}
