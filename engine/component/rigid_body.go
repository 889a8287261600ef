package component

// ShapeKind selects the collision shape variant for a RigidBody. The values
// match the simulation module's numeric shape codes.
type ShapeKind int32

const (
	ShapeSphere ShapeKind = iota
	ShapeBox
)

// CollisionShape is a shape kind plus per-axis extents. Spheres use
// Extents[0] as the radius; boxes use all three as half-extents.
type CollisionShape struct {
	Kind    ShapeKind
	Extents [3]float32
}

// SphereShape builds a sphere collision shape.
//
// Parameters:
//   - radius: the sphere radius
//
// Returns:
//   - CollisionShape: the sphere shape
func SphereShape(radius float32) CollisionShape {
	return CollisionShape{Kind: ShapeSphere, Extents: [3]float32{radius, radius, radius}}
}

// BoxShape builds a box collision shape from half-extents.
//
// Parameters:
//   - hx, hy, hz: half-extents along each axis
//
// Returns:
//   - CollisionShape: the box shape
func BoxShape(hx, hy, hz float32) CollisionShape {
	return CollisionShape{Kind: ShapeBox, Extents: [3]float32{hx, hy, hz}}
}

// Extent returns the single generic extent used by the basic registration
// call: the radius for spheres, the largest half-extent for boxes.
//
// Returns:
//   - float32: the generic extent
func (s CollisionShape) Extent() float32 {
	e := s.Extents[0]
	if s.Extents[1] > e {
		e = s.Extents[1]
	}
	if s.Extents[2] > e {
		e = s.Extents[2]
	}
	return e
}

// RigidBody makes an entity participate in the physics simulation.
//
// Kinematic bodies are authoritative from the Transform (scene to simulation
// every frame); dynamic bodies are authoritative from the simulation
// (simulation to scene every frame). A body is never both written to and
// read from in the same frame.
//
// Friction and Restitution are tracked per entity ahead of simulation
// support; the module does not yet honor them individually.
//
// The simulation slot and bridge reference are assigned once, at
// registration. A RigidBody never synchronizes with the simulation until
// both are set.
type RigidBody struct {
	Base

	Mass       float32
	UseGravity bool
	Kinematic  bool
	Shape      CollisionShape
	Velocity   [3]float32

	Friction    float32
	Restitution float32

	slot   int32
	bridge ForceApplier
}

var _ Component = &RigidBody{}

// NewRigidBody creates a dynamic, gravity-affected RigidBody with the given
// mass and collision shape and no simulation linkage.
//
// Parameters:
//   - mass: the body mass (>= 0)
//   - shape: the collision shape variant
//
// Returns:
//   - *RigidBody: the newly created body
func NewRigidBody(mass float32, shape CollisionShape) *RigidBody {
	return &RigidBody{
		Mass:       mass,
		UseGravity: true,
		Shape:      shape,
		slot:       -1,
	}
}

func (r *RigidBody) Kind() Kind {
	return KindRigidBody
}

// Slot returns the simulation-side entity identifier, or -1 if the body has
// not been registered with a bridge.
//
// Returns:
//   - int32: the simulation slot id or -1
func (r *RigidBody) Slot() int32 {
	return r.slot
}

// Bound reports whether the body is linked to a simulation slot.
//
// Returns:
//   - bool: true when both slot id and bridge reference are set
func (r *RigidBody) Bound() bool {
	return r.slot >= 0 && r.bridge != nil
}

// Bind records the simulation slot id and owning bridge. Called exactly once
// by the bridge during registration.
//
// Parameters:
//   - slot: the assigned simulation slot id
//   - bridge: the owning bridge
func (r *RigidBody) Bind(slot int32, bridge ForceApplier) {
	r.slot = slot
	r.bridge = bridge
}

// Unbind clears the simulation linkage. Called by the bridge on removal so a
// stale component degrades to a no-op rather than driving a dead slot.
func (r *RigidBody) Unbind() {
	r.slot = -1
	r.bridge = nil
}

// ApplyForce applies a force to the body through the bridge. No-op until the
// body is bound.
//
// Parameters:
//   - x, y, z: force components
func (r *RigidBody) ApplyForce(x, y, z float32) {
	if !r.Bound() {
		return
	}
	r.bridge.ApplyForce(r.slot, x, y, z)
}

// ApplyForceVec is the vector form of ApplyForce.
//
// Parameters:
//   - force: the force vector
func (r *RigidBody) ApplyForceVec(force [3]float32) {
	r.ApplyForce(force[0], force[1], force[2])
}

// SetVelocity sets the body's velocity both locally and in the simulation.
// No-op on the simulation side until the body is bound.
//
// Parameters:
//   - x, y, z: velocity components
func (r *RigidBody) SetVelocity(x, y, z float32) {
	r.Velocity = [3]float32{x, y, z}
	if !r.Bound() {
		return
	}
	r.bridge.SetVelocity(r.slot, x, y, z)
}

// SetVelocityVec is the vector form of SetVelocity.
//
// Parameters:
//   - velocity: the velocity vector
func (r *RigidBody) SetVelocityVec(velocity [3]float32) {
	r.SetVelocity(velocity[0], velocity[1], velocity[2])
}
