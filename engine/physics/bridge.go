package physics

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/kinesis-go/engine/component"
	"github.com/Carmen-Shannon/kinesis-go/engine/game_object"
)

// State is the bridge lifecycle phase. Registrations made before the bridge
// reaches StateReady are queued and flushed during Init.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// EntityData is a point-in-time snapshot of one simulated entity, read
// through the module probes.
type EntityData struct {
	Slot     int32
	Position [3]float32
	Velocity [3]float32
}

// EntityShape is a snapshot of one entity's collision shape, read through the
// module's optional extended API.
type EntityShape struct {
	Slot  int32
	Shape component.CollisionShape
}

// CollisionInfo is a snapshot of the module's collision diagnostics: the
// event counter plus the most recent pair's slot ids and contact positions.
type CollisionInfo struct {
	EventCount uint64
	SlotA      int32
	SlotB      int32
	PositionA  [3]float32
	PositionB  [3]float32
}

// Stats is the bridge's monitoring surface. ActiveEntities is sourced from
// the module, the source of truth, not from the host-side registry.
type Stats struct {
	State           State
	ActiveEntities  int32
	Registered      int
	Pending         int
	CollisionEvents uint64
}

type registered struct {
	obj       game_object.GameObject
	transform *component.Transform
	body      *component.RigidBody
	slot      int32
}

type bridge struct {
	mu sync.Mutex

	mod      Module
	extended ExtendedModule
	state    State

	nextSlot int32
	entities map[uint64]*registered
	slots    map[int32]uint64
	pending  []game_object.GameObject
}

// Bridge connects scene entities to simulation slots. It owns slot
// assignment, the per-frame kinematic write and dynamic read-back passes, and
// the panic-isolated probe surface over the module.
//
// A RigidBody is bound to its slot exactly once, at registration; slots are
// never reused, so a stale identifier can never alias a newer entity.
type Bridge interface {
	component.ForceApplier

	// ApplyForceVec is the vector form of ApplyForce.
	//
	// Parameters:
	//   - slot: the simulation slot id
	//   - force: the force vector
	ApplyForceVec(slot int32, force [3]float32)

	// SetVelocityVec is the vector form of SetVelocity.
	//
	// Parameters:
	//   - slot: the simulation slot id
	//   - velocity: the velocity vector
	SetVelocityVec(slot int32, velocity [3]float32)

	// SetPositionVec is the vector form of SetPosition.
	//
	// Parameters:
	//   - slot: the simulation slot id
	//   - position: the position vector
	SetPositionVec(slot int32, position [3]float32)

	// Init initializes the underlying module and flushes every queued
	// registration. The bridge is ready afterwards.
	//
	// Returns:
	//   - error: non-nil if the module failed to initialize
	Init() error

	// State returns the current lifecycle phase.
	//
	// Returns:
	//   - State: the phase
	State() State

	// Ready reports whether the bridge has completed Init.
	//
	// Returns:
	//   - bool: true when ready
	Ready() bool

	// Register assigns the object a simulation slot. Before the bridge is
	// ready the registration is queued and flushed during Init. Objects
	// without a Transform or without a MeshRenderer are ignored: renderless
	// objects are never simulated. A RigidBody is optional; render-only
	// objects are registered immovable with a default unit contact radius.
	// Panics if the object's mesh index is unresolved at the moment the slot
	// would be created.
	//
	// Parameters:
	//   - obj: the object to register
	Register(obj game_object.GameObject)

	// Unregister removes the object's entity from the simulation and unbinds
	// its RigidBody.
	//
	// Parameters:
	//   - obj: the object to remove
	//
	// Returns:
	//   - bool: false if the object was not registered or queued
	Unregister(obj game_object.GameObject) bool

	// Update runs one frame of synchronization: kinematic transforms are
	// written to the simulation, the simulation steps, and dynamic transforms
	// and velocities are read back.
	//
	// Parameters:
	//   - deltaTime: the timestep in seconds
	Update(deltaTime float32)

	// Module returns the underlying simulation module.
	//
	// Returns:
	//   - Module: the module
	Module() Module

	// Slot returns the simulation slot assigned to a game object id.
	//
	// Parameters:
	//   - id: the game object id
	//
	// Returns:
	//   - int32: the slot
	//   - bool: false if the object is not registered
	Slot(id uint64) (int32, bool)

	// EntityData probes the module for one entity's state. A module panic is
	// absorbed and reported as a nil result.
	//
	// Parameters:
	//   - id: the game object id
	//
	// Returns:
	//   - *EntityData: the snapshot, or nil if unknown or the probe failed
	EntityData(id uint64) *EntityData

	// EntityCollisionInfo probes one entity's collision shape through the
	// module's optional extended API. A module panic is absorbed and reported
	// as a nil result.
	//
	// Parameters:
	//   - id: the game object id
	//
	// Returns:
	//   - *EntityShape: the snapshot, or nil if the object is unknown, the
	//     module lacks the extended API, or the probe failed
	EntityCollisionInfo(id uint64) *EntityShape

	// SetEntityCollisionShape replaces a registered entity's collision shape
	// and keeps its RigidBody in sync.
	//
	// Parameters:
	//   - id: the game object id
	//   - shape: the new collision shape
	//
	// Returns:
	//   - bool: false if the object is unknown or the module lacks the
	//     extended API
	SetEntityCollisionShape(id uint64, shape component.CollisionShape) bool

	// CollisionInfo probes the module's collision diagnostics. A module panic
	// is absorbed and reported as a nil result.
	//
	// Returns:
	//   - *CollisionInfo: the snapshot, or nil if the probe failed
	CollisionInfo() *CollisionInfo

	// ClearCollisionEvents resets the module's collision diagnostics.
	ClearCollisionEvents()

	// Stats returns the monitoring snapshot.
	//
	// Returns:
	//   - Stats: the snapshot
	Stats() Stats
}

var _ Bridge = &bridge{}

// NewBridge creates a Bridge over the given module, configured with the given
// options. Panics if mod is nil.
//
// Parameters:
//   - mod: the simulation module to drive
//   - options: functional options to configure the bridge
//
// Returns:
//   - Bridge: the newly created bridge
func NewBridge(mod Module, options ...BridgeBuilderOption) Bridge {
	if mod == nil {
		panic("physics: bridge requires a module")
	}
	b := &bridge{
		mod:      mod,
		entities: make(map[uint64]*registered),
		slots:    make(map[int32]uint64),
	}
	if ext, ok := mod.(ExtendedModule); ok {
		b.extended = ext
	}
	for _, option := range options {
		option(b)
	}
	return b
}

func (b *bridge) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateReady {
		return nil
	}

	b.state = StateInitializing
	if err := b.mod.Init(); err != nil {
		b.state = StateUninitialized
		return fmt.Errorf("failed to initialize simulation module: %w", err)
	}

	queued := b.pending
	b.pending = nil
	b.state = StateReady
	for _, obj := range queued {
		b.register(obj)
	}
	return nil
}

func (b *bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *bridge) Ready() bool {
	return b.State() == StateReady
}

func (b *bridge) Register(obj game_object.GameObject) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateReady {
		b.pending = append(b.pending, obj)
		return
	}
	b.register(obj)
}

// register creates the simulation entity for obj. Caller holds the lock and
// has verified the bridge is ready.
func (b *bridge) register(obj game_object.GameObject) {
	transform := obj.Transform()
	renderer := obj.MeshRenderer()
	if transform == nil || renderer == nil {
		return
	}
	if _, exists := b.entities[obj.ID()]; exists {
		return
	}
	if renderer.MeshIndex() < 0 {
		panic(fmt.Sprintf("physics: object %q registered with unresolved mesh index", obj.Name()))
	}

	// Render-only objects still need a slot so the renderer sees them; they
	// are registered immovable with a unit contact radius.
	body := obj.RigidBody()
	mass := float32(0)
	extent := float32(1)
	kinematic := true
	if body != nil {
		mass = body.Mass
		extent = body.Shape.Extent()
		kinematic = body.Kinematic
	}

	slot := b.nextSlot
	b.nextSlot++

	b.mod.AddEntity(slot,
		transform.Position[0], transform.Position[1], transform.Position[2],
		transform.Scale[0], transform.Scale[1], transform.Scale[2],
		renderer.Color[0], renderer.Color[1], renderer.Color[2], renderer.Color[3],
		int32(renderer.MeshIndex()), renderer.MaterialID,
		mass, extent, kinematic,
	)
	if body != nil {
		if b.extended != nil {
			b.extended.SetEntityCollisionShape(slot, int32(body.Shape.Kind),
				body.Shape.Extents[0], body.Shape.Extents[1], body.Shape.Extents[2])
		}
		if body.Velocity != [3]float32{} {
			b.mod.SetEntityVelocity(slot, body.Velocity[0], body.Velocity[1], body.Velocity[2])
		}
	}

	b.entities[obj.ID()] = &registered{
		obj:       obj,
		transform: transform,
		body:      body,
		slot:      slot,
	}
	b.slots[slot] = obj.ID()
	if body != nil {
		body.Bind(slot, b)
	}
}

func (b *bridge) Unregister(obj game_object.GameObject) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.entities[obj.ID()]
	if !ok {
		for i, queued := range b.pending {
			if queued == obj {
				b.pending = append(b.pending[:i], b.pending[i+1:]...)
				return true
			}
		}
		return false
	}

	b.mod.RemoveEntity(entry.slot)
	if entry.body != nil {
		entry.body.Unbind()
	}
	delete(b.entities, obj.ID())
	delete(b.slots, entry.slot)
	return true
}

func (b *bridge) Update(deltaTime float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateReady {
		return
	}

	// Kinematic and render-only bodies are authoritative from the scene:
	// push transforms in before the step.
	for _, entry := range b.entities {
		if (entry.body != nil && !entry.body.Kinematic) || !entry.obj.Enabled() {
			continue
		}
		p := entry.transform.Position
		b.mod.SetEntityPosition(entry.slot, p[0], p[1], p[2])
	}

	b.mod.Update(deltaTime)

	// Dynamic bodies are authoritative from the simulation: pull transforms
	// and velocities back after the step.
	for _, entry := range b.entities {
		if entry.body == nil || entry.body.Kinematic {
			continue
		}
		x, y, z := b.mod.EntityPosition(entry.slot)
		entry.transform.SetPosition(x, y, z)
		vx, vy, vz := b.mod.EntityVelocity(entry.slot)
		entry.body.Velocity = [3]float32{vx, vy, vz}
	}
}

func (b *bridge) Module() Module {
	return b.mod
}

func (b *bridge) Slot(id uint64) (int32, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entry, ok := b.entities[id]
	if !ok {
		return 0, false
	}
	return entry.slot, true
}

func (b *bridge) ApplyForce(slot int32, x, y, z float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateReady {
		return
	}
	b.mod.ApplyForce(slot, x, y, z)
}

func (b *bridge) SetVelocity(slot int32, x, y, z float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateReady {
		return
	}
	b.mod.SetEntityVelocity(slot, x, y, z)
}

func (b *bridge) SetPosition(slot int32, x, y, z float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateReady {
		return
	}
	b.mod.SetEntityPosition(slot, x, y, z)
}

func (b *bridge) ApplyForceVec(slot int32, force [3]float32) {
	b.ApplyForce(slot, force[0], force[1], force[2])
}

func (b *bridge) SetVelocityVec(slot int32, velocity [3]float32) {
	b.SetVelocity(slot, velocity[0], velocity[1], velocity[2])
}

func (b *bridge) SetPositionVec(slot int32, position [3]float32) {
	b.SetPosition(slot, position[0], position[1], position[2])
}

func (b *bridge) EntityData(id uint64) (data *EntityData) {
	b.mu.Lock()
	defer b.mu.Unlock()
	defer func() {
		if recover() != nil {
			data = nil
		}
	}()

	entry, ok := b.entities[id]
	if !ok {
		return nil
	}
	x, y, z := b.mod.EntityPosition(entry.slot)
	vx, vy, vz := b.mod.EntityVelocity(entry.slot)
	return &EntityData{
		Slot:     entry.slot,
		Position: [3]float32{x, y, z},
		Velocity: [3]float32{vx, vy, vz},
	}
}

func (b *bridge) EntityCollisionInfo(id uint64) (info *EntityShape) {
	b.mu.Lock()
	defer b.mu.Unlock()
	defer func() {
		if recover() != nil {
			info = nil
		}
	}()

	if b.extended == nil {
		return nil
	}
	entry, ok := b.entities[id]
	if !ok {
		return nil
	}
	kind, ex, ey, ez := b.extended.EntityCollisionShape(entry.slot)
	return &EntityShape{
		Slot: entry.slot,
		Shape: component.CollisionShape{
			Kind:    component.ShapeKind(kind),
			Extents: [3]float32{ex, ey, ez},
		},
	}
}

func (b *bridge) SetEntityCollisionShape(id uint64, shape component.CollisionShape) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.extended == nil {
		return false
	}
	entry, ok := b.entities[id]
	if !ok {
		return false
	}
	b.extended.SetEntityCollisionShape(entry.slot, int32(shape.Kind),
		shape.Extents[0], shape.Extents[1], shape.Extents[2])
	if entry.body != nil {
		entry.body.Shape = shape
	}
	return true
}

func (b *bridge) CollisionInfo() (info *CollisionInfo) {
	b.mu.Lock()
	defer b.mu.Unlock()
	defer func() {
		if recover() != nil {
			info = nil
		}
	}()

	pair := b.mod.LastCollisionPair()
	posA, posB := b.mod.LastCollisionPositions()
	return &CollisionInfo{
		EventCount: b.mod.CollisionEventCount(),
		SlotA:      int32(pair >> 32),
		SlotB:      int32(pair & 0xffffffff),
		PositionA:  posA,
		PositionB:  posB,
	}
}

func (b *bridge) ClearCollisionEvents() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mod.ClearCollisionEvents()
}

func (b *bridge) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Stats{
		State:           b.state,
		ActiveEntities:  b.mod.EntityCount(),
		Registered:      len(b.entities),
		Pending:         len(b.pending),
		CollisionEvents: b.mod.CollisionEventCount(),
	}
}
