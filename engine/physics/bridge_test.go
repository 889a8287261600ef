package physics

import (
	"testing"

	"github.com/Carmen-Shannon/kinesis-go/engine/component"
	"github.com/Carmen-Shannon/kinesis-go/engine/game_object"
)

// fakeModule records every contract call so tests can assert call ordering
// and arguments without a real simulation.
type fakeModule struct {
	initCalls   int
	updates     []float32
	added       []int32
	removed     []int32
	positions   map[int32][3]float32
	velocities  map[int32][3]float32
	shapes      map[int32][4]float32
	kinematics  map[int32]bool
	forces      [][4]float32
	count       int32
	panicProbes bool
}

var _ ExtendedModule = &fakeModule{}

func newFakeModule() *fakeModule {
	return &fakeModule{
		positions:  make(map[int32][3]float32),
		velocities: make(map[int32][3]float32),
		shapes:     make(map[int32][4]float32),
		kinematics: make(map[int32]bool),
	}
}

func (f *fakeModule) Init() error {
	f.initCalls++
	return nil
}

func (f *fakeModule) Update(deltaTime float32) {
	f.updates = append(f.updates, deltaTime)
}

func (f *fakeModule) AddEntity(id int32, x, y, z, sx, sy, sz, r, g, b, a float32, meshIndex, materialID int32, mass, extent float32, kinematic bool) {
	f.added = append(f.added, id)
	f.positions[id] = [3]float32{x, y, z}
	f.kinematics[id] = kinematic
	f.count++
}

func (f *fakeModule) RemoveEntity(id int32) {
	f.removed = append(f.removed, id)
	delete(f.positions, id)
	f.count--
}

func (f *fakeModule) EntityCount() int32 {
	return f.count
}

func (f *fakeModule) ApplyForce(id int32, x, y, z float32) {
	f.forces = append(f.forces, [4]float32{float32(id), x, y, z})
}

func (f *fakeModule) SetEntityPosition(id int32, x, y, z float32) {
	f.positions[id] = [3]float32{x, y, z}
}

func (f *fakeModule) SetEntityVelocity(id int32, x, y, z float32) {
	f.velocities[id] = [3]float32{x, y, z}
}

func (f *fakeModule) EntityPosition(id int32) (x, y, z float32) {
	if f.panicProbes {
		panic("probe failure")
	}
	p := f.positions[id]
	return p[0], p[1], p[2]
}

func (f *fakeModule) EntityVelocity(id int32) (x, y, z float32) {
	if f.panicProbes {
		panic("probe failure")
	}
	v := f.velocities[id]
	return v[0], v[1], v[2]
}

func (f *fakeModule) Memory() []byte {
	return nil
}

func (f *fakeModule) Layout() MemoryLayout {
	return MemoryLayout{Version: 1, TransformsOffset: 64, FloatsPerEntity: 16, MaxEntities: 64}
}

func (f *fakeModule) Version() int32 {
	return 1
}

func (f *fakeModule) CollisionEventCount() uint64 {
	if f.panicProbes {
		panic("probe failure")
	}
	return 3
}

func (f *fakeModule) LastCollisionPair() uint64 {
	if f.panicProbes {
		panic("probe failure")
	}
	return uint64(5)<<32 | 7
}

func (f *fakeModule) LastCollisionPositions() (a, b [3]float32) {
	return [3]float32{1, 2, 3}, [3]float32{4, 5, 6}
}

func (f *fakeModule) ClearCollisionEvents() {}

func (f *fakeModule) SetEntityCollisionShape(id int32, kind int32, ex, ey, ez float32) {
	f.shapes[id] = [4]float32{float32(kind), ex, ey, ez}
}

func (f *fakeModule) EntityCollisionShape(id int32) (kind int32, ex, ey, ez float32) {
	if f.panicProbes {
		panic("probe failure")
	}
	s := f.shapes[id]
	return int32(s[0]), s[1], s[2], s[3]
}

// baselineModule hides the extended shape API, exposing only the core
// contract.
type baselineModule struct {
	inner *fakeModule
}

var _ Module = &baselineModule{}

func (b *baselineModule) Init() error              { return b.inner.Init() }
func (b *baselineModule) Update(deltaTime float32) { b.inner.Update(deltaTime) }
func (b *baselineModule) AddEntity(id int32, x, y, z, sx, sy, sz, r, g, bl, a float32, meshIndex, materialID int32, mass, extent float32, kinematic bool) {
	b.inner.AddEntity(id, x, y, z, sx, sy, sz, r, g, bl, a, meshIndex, materialID, mass, extent, kinematic)
}
func (b *baselineModule) RemoveEntity(id int32)                 { b.inner.RemoveEntity(id) }
func (b *baselineModule) EntityCount() int32                    { return b.inner.EntityCount() }
func (b *baselineModule) ApplyForce(id int32, x, y, z float32)  { b.inner.ApplyForce(id, x, y, z) }
func (b *baselineModule) SetEntityPosition(id int32, x, y, z float32) {
	b.inner.SetEntityPosition(id, x, y, z)
}
func (b *baselineModule) SetEntityVelocity(id int32, x, y, z float32) {
	b.inner.SetEntityVelocity(id, x, y, z)
}
func (b *baselineModule) EntityPosition(id int32) (x, y, z float32) {
	return b.inner.EntityPosition(id)
}
func (b *baselineModule) EntityVelocity(id int32) (x, y, z float32) {
	return b.inner.EntityVelocity(id)
}
func (b *baselineModule) Memory() []byte                          { return b.inner.Memory() }
func (b *baselineModule) Layout() MemoryLayout                    { return b.inner.Layout() }
func (b *baselineModule) Version() int32                          { return b.inner.Version() }
func (b *baselineModule) CollisionEventCount() uint64             { return b.inner.CollisionEventCount() }
func (b *baselineModule) LastCollisionPair() uint64               { return b.inner.LastCollisionPair() }
func (b *baselineModule) LastCollisionPositions() (a, c [3]float32) {
	return b.inner.LastCollisionPositions()
}
func (b *baselineModule) ClearCollisionEvents() { b.inner.ClearCollisionEvents() }

func newPhysicsObject(id uint64, name string, kinematic bool) game_object.GameObject {
	mr := component.NewMeshRenderer("sphere")
	mr.ResolveMeshIndex(&fixedRegistry{indices: map[string]int{"sphere": 0, "cube": 1}})
	rb := component.NewRigidBody(1, component.SphereShape(0.5))
	rb.Kinematic = kinematic

	obj := game_object.NewGameObject(
		game_object.WithName(name),
		game_object.WithTransform(0, 5, 0),
		game_object.WithComponent(mr),
		game_object.WithComponent(rb),
	)
	obj.SetID(id)
	return obj
}

type fixedRegistry struct {
	indices map[string]int
}

func (f *fixedRegistry) MeshIndex(id string) int {
	if idx, ok := f.indices[id]; ok {
		return idx
	}
	return -1
}

func TestRegistrationsQueueUntilInit(t *testing.T) {
	mod := newFakeModule()
	b := NewBridge(mod)

	obj := newPhysicsObject(1, "ball", false)
	b.Register(obj)

	if len(mod.added) != 0 {
		t.Fatalf("expected no foreign calls before init, got %v", mod.added)
	}
	if stats := b.Stats(); stats.Pending != 1 || stats.State != StateUninitialized {
		t.Fatalf("expected one pending registration, got %+v", stats)
	}
	if obj.RigidBody().Bound() {
		t.Fatalf("expected body unbound before init")
	}

	if err := b.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if mod.initCalls != 1 || len(mod.added) != 1 {
		t.Fatalf("expected queued registration flushed on init, added=%v", mod.added)
	}
	if !obj.RigidBody().Bound() || obj.RigidBody().Slot() != 0 {
		t.Fatalf("expected body bound to slot 0, got slot %d", obj.RigidBody().Slot())
	}
	if stats := b.Stats(); stats.Pending != 0 || stats.Registered != 1 || stats.ActiveEntities != 1 {
		t.Fatalf("unexpected post-init stats: %+v", stats)
	}
}

func TestUnresolvedMeshIndexPanicsBeforeForeignCall(t *testing.T) {
	mod := newFakeModule()
	b := NewBridge(mod)
	if err := b.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	mr := component.NewMeshRenderer("missing")
	obj := game_object.NewGameObject(
		game_object.WithName("ghost"),
		game_object.WithTransform(0, 0, 0),
		game_object.WithComponent(mr),
		game_object.WithComponent(component.NewRigidBody(1, component.SphereShape(0.5))),
	)
	obj.SetID(2)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unresolved mesh index")
		}
		if len(mod.added) != 0 {
			t.Fatalf("expected no foreign call before the panic, got %v", mod.added)
		}
	}()
	b.Register(obj)
}

func TestSlotsAreNeverReused(t *testing.T) {
	mod := newFakeModule()
	b := NewBridge(mod)
	if err := b.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	first := newPhysicsObject(1, "first", false)
	b.Register(first)
	b.Unregister(first)

	second := newPhysicsObject(2, "second", false)
	b.Register(second)

	if first.RigidBody().Bound() {
		t.Fatalf("expected first body unbound after unregister")
	}
	if slot, ok := b.Slot(2); !ok || slot != 1 {
		t.Fatalf("expected second object in fresh slot 1, got %d (ok=%v)", slot, ok)
	}
	if len(mod.removed) != 1 || mod.removed[0] != 0 {
		t.Fatalf("expected slot 0 removed, got %v", mod.removed)
	}
}

func TestForceOnRemovedBodyIsInert(t *testing.T) {
	mod := newFakeModule()
	b := NewBridge(mod)
	if err := b.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	obj := newPhysicsObject(1, "ball", false)
	b.Register(obj)
	rb := obj.RigidBody()
	b.Unregister(obj)

	// The unbound component swallows the call; nothing reaches the module.
	rb.ApplyForce(10, 0, 0)
	if len(mod.forces) != 0 {
		t.Fatalf("expected no force calls after removal, got %v", mod.forces)
	}
}

func TestUpdateSyncPasses(t *testing.T) {
	mod := newFakeModule()
	b := NewBridge(mod)
	if err := b.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	kin := newPhysicsObject(1, "platform", true)
	dyn := newPhysicsObject(2, "ball", false)
	b.Register(kin)
	b.Register(dyn)

	kinSlot, _ := b.Slot(1)
	dynSlot, _ := b.Slot(2)

	// Scene moves the kinematic body; the simulation moves the dynamic one.
	kin.Transform().SetPosition(9, 9, 9)
	mod.positions[dynSlot] = [3]float32{1, 2, 3}
	mod.velocities[dynSlot] = [3]float32{0, -1, 0}

	b.Update(1.0 / 60.0)

	if len(mod.updates) != 1 {
		t.Fatalf("expected one module step, got %v", mod.updates)
	}
	if mod.positions[kinSlot] != [3]float32{9, 9, 9} {
		t.Fatalf("expected kinematic position pushed before the step, got %v", mod.positions[kinSlot])
	}
	if dyn.Transform().Position != [3]float32{1, 2, 3} {
		t.Fatalf("expected dynamic transform read back, got %v", dyn.Transform().Position)
	}
	if dyn.RigidBody().Velocity != [3]float32{0, -1, 0} {
		t.Fatalf("expected dynamic velocity read back, got %v", dyn.RigidBody().Velocity)
	}
	// Kinematic transforms are never overwritten from the simulation.
	if kin.Transform().Position != [3]float32{9, 9, 9} {
		t.Fatalf("expected kinematic transform untouched, got %v", kin.Transform().Position)
	}
}

func TestExtendedShapeRegistration(t *testing.T) {
	mod := newFakeModule()
	b := NewBridge(mod)
	if err := b.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	mr := component.NewMeshRenderer("cube")
	mr.ResolveMeshIndex(&fixedRegistry{indices: map[string]int{"cube": 1}})
	obj := game_object.NewGameObject(
		game_object.WithName("crate"),
		game_object.WithTransform(0, 1, 0),
		game_object.WithComponent(mr),
		game_object.WithComponent(component.NewRigidBody(2, component.BoxShape(0.5, 1, 0.25))),
	)
	obj.SetID(3)
	b.Register(obj)

	slot, _ := b.Slot(3)
	if mod.shapes[slot] != [4]float32{1, 0.5, 1, 0.25} {
		t.Fatalf("expected box shape forwarded, got %v", mod.shapes[slot])
	}
}

func TestProbesAbsorbModulePanics(t *testing.T) {
	mod := newFakeModule()
	b := NewBridge(mod)
	if err := b.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	obj := newPhysicsObject(1, "ball", false)
	b.Register(obj)

	if info := b.CollisionInfo(); info == nil || info.SlotA != 5 || info.SlotB != 7 || info.EventCount != 3 {
		t.Fatalf("unexpected collision info: %+v", info)
	}
	if data := b.EntityData(1); data == nil {
		t.Fatalf("expected entity data for registered object")
	}

	mod.panicProbes = true
	if data := b.EntityData(1); data != nil {
		t.Fatalf("expected nil data when the module panics, got %+v", data)
	}
	if info := b.CollisionInfo(); info != nil {
		t.Fatalf("expected nil info when the module panics, got %+v", info)
	}
}

func TestRenderOnlyEntityGetsImmovableSlot(t *testing.T) {
	mod := newFakeModule()
	b := NewBridge(mod)
	if err := b.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	mr := component.NewMeshRenderer("cube")
	mr.ResolveMeshIndex(&fixedRegistry{indices: map[string]int{"cube": 1}})
	obj := game_object.NewGameObject(
		game_object.WithName("scenery"),
		game_object.WithTransform(5, 0, 5),
		game_object.WithComponent(mr),
	)
	obj.SetID(4)
	b.Register(obj)

	slot, ok := b.Slot(4)
	if !ok {
		t.Fatalf("expected render-only object to receive a slot")
	}
	if !mod.kinematics[slot] {
		t.Fatalf("expected render-only object registered immovable")
	}

	// The scene stays authoritative: moving the transform reaches the
	// simulation on the next update.
	obj.Transform().SetPosition(6, 0, 6)
	b.Update(1.0 / 60.0)
	if mod.positions[slot] != [3]float32{6, 0, 6} {
		t.Fatalf("expected transform pushed for render-only object, got %v", mod.positions[slot])
	}
}

func TestRenderlessEntityIsIgnored(t *testing.T) {
	mod := newFakeModule()
	b := NewBridge(mod)
	if err := b.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	obj := game_object.NewGameObject(
		game_object.WithName("invisible"),
		game_object.WithTransform(0, 0, 0),
	)
	obj.AddComponent(component.NewRigidBody(1, component.SphereShape(0.5)))
	obj.SetID(5)

	b.Register(obj)
	b.Register(obj)

	if len(mod.added) != 0 {
		t.Fatalf("expected no slot for renderless object, got %v", mod.added)
	}
	if _, ok := b.Slot(5); ok {
		t.Fatalf("expected no slot mapping for renderless object")
	}
	if b.Unregister(obj) {
		t.Fatalf("expected unregister of unknown object to report false")
	}
}

func TestCollisionShapeRoundTripThroughBridge(t *testing.T) {
	mod := newFakeModule()
	b := NewBridge(mod)
	if err := b.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	obj := newPhysicsObject(1, "crate", false)
	b.Register(obj)

	// Registration pushed the sphere; replace it with a box after the fact.
	box := component.BoxShape(0.5, 1, 0.25)
	if !b.SetEntityCollisionShape(1, box) {
		t.Fatalf("expected shape replacement to succeed")
	}
	if obj.RigidBody().Shape != box {
		t.Fatalf("expected rigid body shape kept in sync, got %+v", obj.RigidBody().Shape)
	}

	info := b.EntityCollisionInfo(1)
	if info == nil {
		t.Fatalf("expected shape info for registered object")
	}
	if info.Shape != box {
		t.Fatalf("expected box shape read back, got %+v", info.Shape)
	}
	slot, _ := b.Slot(1)
	if info.Slot != slot {
		t.Fatalf("expected shape info for slot %d, got %d", slot, info.Slot)
	}

	if b.EntityCollisionInfo(99) != nil {
		t.Fatalf("expected nil info for unknown object")
	}
	if b.SetEntityCollisionShape(99, box) {
		t.Fatalf("expected shape replacement to fail for unknown object")
	}

	mod.panicProbes = true
	if b.EntityCollisionInfo(1) != nil {
		t.Fatalf("expected nil info when the module panics")
	}
}

func TestCollisionShapeWithoutExtendedModule(t *testing.T) {
	b := NewBridge(&baselineModule{inner: newFakeModule()})
	if err := b.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	obj := newPhysicsObject(1, "ball", false)
	b.Register(obj)

	if b.EntityCollisionInfo(1) != nil {
		t.Fatalf("expected nil info when the module lacks the shape API")
	}
	if b.SetEntityCollisionShape(1, component.BoxShape(1, 1, 1)) {
		t.Fatalf("expected shape replacement to report false without the shape API")
	}
}

func TestUnregisterPendingObject(t *testing.T) {
	mod := newFakeModule()
	b := NewBridge(mod)

	obj := newPhysicsObject(1, "ball", false)
	b.Register(obj)
	b.Unregister(obj)

	if err := b.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if len(mod.added) != 0 {
		t.Fatalf("expected unregistered pending object never added, got %v", mod.added)
	}
}
