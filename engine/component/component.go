// Package component defines the capability-typed behavior units that attach to
// game objects: spatial state (Transform), render descriptors (MeshRenderer),
// physics descriptors (RigidBody), and scripted behaviors (Rotator).
// Each component kind may be attached to a game object at most once.
package component

// Kind identifies a component capability. Game objects store at most one
// component per kind, and lookups dispatch on the kind tag rather than on
// dynamic type assertions.
type Kind int

const (
	KindTransform Kind = iota
	KindMeshRenderer
	KindRigidBody
	KindRotator
)

// Component is the lifecycle contract shared by all behavior units.
// Lifecycle order is strict: Awake and Start are each invoked exactly once,
// Update runs every frame pass, and Destroy is invoked once on removal.
type Component interface {
	// Kind returns the capability tag for this component.
	//
	// Returns:
	//   - Kind: the component kind
	Kind() Kind

	// Awake is called once when the owning scene initializes, before Start.
	Awake()

	// Start is called once after every component in the scene has awoken.
	Start()

	// Update is called during each of the scene's per-frame component passes.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	Update(deltaTime float32)

	// Destroy is called once when the component's owner is removed.
	Destroy()
}

// Base provides no-op lifecycle methods so concrete components only override
// the hooks they need.
type Base struct{}

func (Base) Awake()                   {}
func (Base) Start()                   {}
func (Base) Update(deltaTime float32) {}
func (Base) Destroy()                 {}

// MeshIndexer resolves a mesh identifier to the integer index assigned by the
// render adapter's mesh registry. A negative index means unregistered.
type MeshIndexer interface {
	MeshIndex(id string) int
}

// ForceApplier is the narrow slice of the physics bridge a RigidBody needs to
// drive its simulation slot. Calls are immediate pass-throughs and take effect
// on the simulation's next step.
type ForceApplier interface {
	ApplyForce(slot int32, x, y, z float32)
	SetVelocity(slot int32, x, y, z float32)
	SetPosition(slot int32, x, y, z float32)
}
