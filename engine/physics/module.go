// Package physics defines the foreign simulation contract and the bridge that
// connects scene entities to simulation slots. The Module interface is shaped
// for a boundary that only carries primitive values: int32 identifiers, flat
// float32 arguments, and a raw shared memory block for transform readout.
package physics

// MemoryLayout describes the structure of a module's shared memory block so
// the host can index transform records without per-entity calls.
type MemoryLayout struct {
	// Version is the layout revision; hosts must reject versions they do not
	// understand.
	Version int32

	// TransformsOffset is the byte offset of the first entity record.
	TransformsOffset int32

	// FloatsPerEntity is the float32 stride of one entity record.
	FloatsPerEntity int32

	// MaxEntities is the slot capacity of the block.
	MaxEntities int32
}

// Module is the contract a simulation backend exposes to the host. Every call
// crosses a foreign boundary, so the surface uses primitives only: no slices
// except the raw memory block, no structs except MemoryLayout, no callbacks.
//
// Entity identifiers are host-assigned slots. Calls naming a slot that was
// never added, or that has been removed, must be ignored rather than trapped.
type Module interface {
	// Init prepares the simulation. Must be called before any other method.
	//
	// Returns:
	//   - error: non-nil if the simulation could not start
	Init() error

	// Update advances the simulation by the given timestep.
	//
	// Parameters:
	//   - deltaTime: the timestep in seconds
	Update(deltaTime float32)

	// AddEntity registers an entity in the given slot.
	//
	// Parameters:
	//   - id: the host-assigned slot identifier
	//   - x, y, z: initial position
	//   - sx, sy, sz: render scale, carried through to the shared block
	//   - r, g, b, a: color, carried through to the shared block
	//   - meshIndex: the render mesh index, carried through to the shared block
	//   - materialID: the material identifier, carried through to the shared block
	//   - mass: the body mass
	//   - extent: the generic collision extent (sphere radius)
	//   - kinematic: true for bodies the host positions directly
	AddEntity(id int32, x, y, z, sx, sy, sz, r, g, b, a float32, meshIndex, materialID int32, mass, extent float32, kinematic bool)

	// RemoveEntity deactivates the entity in the given slot. The slot is not
	// reused.
	//
	// Parameters:
	//   - id: the slot identifier
	RemoveEntity(id int32)

	// EntityCount returns the number of active entities.
	//
	// Returns:
	//   - int32: the active entity count
	EntityCount() int32

	// ApplyForce accumulates a force on a dynamic entity for the next step.
	//
	// Parameters:
	//   - id: the slot identifier
	//   - x, y, z: force components
	ApplyForce(id int32, x, y, z float32)

	// SetEntityPosition teleports an entity. Used every frame for kinematic
	// bodies.
	//
	// Parameters:
	//   - id: the slot identifier
	//   - x, y, z: new position
	SetEntityPosition(id int32, x, y, z float32)

	// SetEntityVelocity overwrites an entity's velocity.
	//
	// Parameters:
	//   - id: the slot identifier
	//   - x, y, z: new velocity
	SetEntityVelocity(id int32, x, y, z float32)

	// EntityPosition reads an entity's position.
	//
	// Parameters:
	//   - id: the slot identifier
	//
	// Returns:
	//   - x, y, z: the position, zeros for unknown slots
	EntityPosition(id int32) (x, y, z float32)

	// EntityVelocity reads an entity's velocity.
	//
	// Parameters:
	//   - id: the slot identifier
	//
	// Returns:
	//   - x, y, z: the velocity, zeros for unknown slots
	EntityVelocity(id int32) (x, y, z float32)

	// Memory returns the shared transform block. The returned slice aliases
	// live simulation memory and is only stable between Update calls.
	//
	// Returns:
	//   - []byte: the shared memory block
	Memory() []byte

	// Layout describes the shared memory block.
	//
	// Returns:
	//   - MemoryLayout: the block layout
	Layout() MemoryLayout

	// Version returns the module's interface revision.
	//
	// Returns:
	//   - int32: the version number
	Version() int32

	// CollisionEventCount returns the number of collision events recorded
	// since the last clear.
	//
	// Returns:
	//   - uint64: the event count
	CollisionEventCount() uint64

	// LastCollisionPair returns the most recent colliding slot pair, packed
	// with the first slot in the high 32 bits.
	//
	// Returns:
	//   - uint64: the packed pair, zero if no events
	LastCollisionPair() uint64

	// LastCollisionPositions returns the positions of the most recent
	// colliding pair at contact time.
	//
	// Returns:
	//   - a, b: the positions, zeros if no events
	LastCollisionPositions() (a, b [3]float32)

	// ClearCollisionEvents resets the collision event counter and pair.
	ClearCollisionEvents()
}

// ExtendedModule is implemented by backends that support per-entity collision
// shapes beyond the generic extent. Hosts feature-detect it with a type
// assertion and fall back to the basic registration call when absent.
type ExtendedModule interface {
	Module

	// SetEntityCollisionShape assigns a collision shape to an entity.
	//
	// Parameters:
	//   - id: the slot identifier
	//   - kind: the shape code (0 sphere, 1 box)
	//   - ex, ey, ez: per-axis extents
	SetEntityCollisionShape(id int32, kind int32, ex, ey, ez float32)

	// EntityCollisionShape reads an entity's collision shape.
	//
	// Parameters:
	//   - id: the slot identifier
	//
	// Returns:
	//   - kind: the shape code
	//   - ex, ey, ez: per-axis extents
	EntityCollisionShape(id int32) (kind int32, ex, ey, ez float32)
}
