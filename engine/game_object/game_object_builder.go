package game_object

import (
	"github.com/Carmen-Shannon/kinesis-go/engine/component"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithName sets the name of the GameObject. Names are used for scene lookups
// and need not be unique; FindByName returns the first match.
//
// Parameters:
//   - name: the name to assign
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithTag sets the tag of the GameObject for group lookups via FindByTag.
//
// Parameters:
//   - tag: the tag to assign
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the tag
func WithTag(tag string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.tag = tag
	}
}

// WithEnabled sets whether the GameObject participates in update and render
// passes. Objects default to enabled.
//
// Parameters:
//   - enabled: true to enable the object
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithComponent attaches a component during construction. Panics if a
// component of the same kind was already attached.
//
// Parameters:
//   - c: the component to attach
//
// Returns:
//   - GameObjectBuilderOption: functional option to attach the component
func WithComponent(c component.Component) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.AddComponent(c)
	}
}

// WithTransform attaches a Transform at the given position with unit scale.
//
// Parameters:
//   - x, y, z: initial position components
//
// Returns:
//   - GameObjectBuilderOption: functional option to attach the transform
func WithTransform(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		tr := component.NewTransform()
		tr.SetPosition(x, y, z)
		obj.AddComponent(tr)
	}
}

// WithParent parents the GameObject under another object during construction.
//
// Parameters:
//   - parent: the parent object
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the parent
func WithParent(parent GameObject) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.SetParent(parent)
	}
}
