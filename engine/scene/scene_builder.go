package scene

import (
	"github.com/Carmen-Shannon/kinesis-go/engine/camera"
	"github.com/Carmen-Shannon/kinesis-go/engine/game_object"
	"github.com/Carmen-Shannon/kinesis-go/engine/input"
	"github.com/Carmen-Shannon/kinesis-go/engine/physics"
)

// SceneBuilderOption is a functional option for configuring a scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithName sets the scene's name.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = name
	}
}

// WithActive sets whether the scene starts active.
//
// Parameters:
//   - active: true to start active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithCamera attaches the scene camera.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithBridge attaches the physics bridge. Every scene requires one.
//
// Parameters:
//   - bridge: the bridge
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBridge(bridge physics.Bridge) SceneBuilderOption {
	return func(s *scene) {
		s.bridge = bridge
	}
}

// WithInputController sets the initially active input controller.
//
// Parameters:
//   - ctrl: the controller
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithInputController(ctrl input.Controller) SceneBuilderOption {
	return func(s *scene) {
		s.controls = ctrl
	}
}

// WithGameObject adds an object during scene construction. The object is
// assigned an id and registered with the bridge exactly as if added through
// Add, regardless of option order.
//
// Parameters:
//   - obj: the object to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithGameObject(obj game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		if obj.ID() == 0 {
			obj.SetID(s.nextID)
			s.nextID++
		}
		if _, exists := s.objects[obj.ID()]; exists {
			return
		}
		s.objects[obj.ID()] = obj
		s.order = append(s.order, obj.ID())
		obj.SetScene(s)
	}
}
