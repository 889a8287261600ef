// Package sim is the in-process simulation backend. It implements the
// physics.Module contract against a flat float32 block laid out the way a
// shared-memory module would expose it, so the host-side bridge exercises the
// same readout path it would use against a foreign backend.
package sim

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/kinesis-go/common"
	"github.com/Carmen-Shannon/kinesis-go/engine/physics"
)

const (
	layoutVersion = 1

	// headerFloats is the float32 size of the block header. The header holds
	// [version, floatsPerEntity, maxEntities, activeCount] with the remainder
	// reserved.
	headerFloats = 16

	// floatsPerEntity is the stride of one entity record:
	// [px py pz active] [sx sy sz meshIndex] [r g b a] [materialID kinematic 0 0]
	floatsPerEntity = 16
)

// Collision flag bits reported by Flags after each step.
const (
	CollideFloor uint32 = 1 << iota
	CollideWall
	CollideEntity
	CollideKinematic
)

type body struct {
	active    bool
	kinematic bool
	mass      float32
	velocity  [3]float32
	force     [3]float32
	shapeKind int32
	extents   [3]float32
}

type module struct {
	mu sync.Mutex

	tuning      Tuning
	maxEntities int32

	mem    []float32
	bodies []body
	count  int32

	flags         uint32
	eventCount    uint64
	lastPair      uint64
	lastPositions [2][3]float32
	initialized   bool
}

var _ physics.ExtendedModule = &module{}

// NewModule creates a simulation module configured with the given options.
// The module must be initialized with Init before use.
//
// Parameters:
//   - options: functional options to configure the module
//
// Returns:
//   - physics.Module: the newly created module
func NewModule(options ...ModuleBuilderOption) physics.Module {
	m := &module{
		tuning:      DefaultTuning(),
		maxEntities: 1024,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *module) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mem = make([]float32, headerFloats+int(m.maxEntities)*floatsPerEntity)
	m.mem[0] = layoutVersion
	m.mem[1] = floatsPerEntity
	m.mem[2] = float32(m.maxEntities)
	m.bodies = make([]body, m.maxEntities)
	m.count = 0
	m.initialized = true
	return nil
}

func (m *module) Update(deltaTime float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized || deltaTime <= 0 {
		return
	}

	m.flags = 0
	damp := 1 - m.tuning.Damping*deltaTime
	if damp < 0 {
		damp = 0
	}

	for i := range m.bodies {
		b := &m.bodies[i]
		if !b.active || b.kinematic {
			b.force = [3]float32{}
			continue
		}
		mass := b.mass
		if mass <= 0 {
			mass = 1
		}
		for axis := 0; axis < 3; axis++ {
			b.velocity[axis] += (m.tuning.Gravity[axis] + b.force[axis]/mass) * deltaTime
			b.velocity[axis] *= damp
		}
		b.force = [3]float32{}

		base := m.slotBase(int32(i))
		for axis := 0; axis < 3; axis++ {
			m.mem[base+axis] += b.velocity[axis] * deltaTime
		}
		m.clampToBounds(int32(i), b)
	}

	m.resolveContacts()
}

// clampToBounds pushes an entity back inside the world bounds along each
// axis, reflecting velocity with restitution. The y floor sets the floor
// flag; every other face sets the wall flag.
func (m *module) clampToBounds(id int32, b *body) {
	base := m.slotBase(id)
	ext := m.boundsExtents(b)
	for axis := 0; axis < 3; axis++ {
		lo := m.tuning.BoundsMin[axis] + ext[axis]
		hi := m.tuning.BoundsMax[axis] - ext[axis]
		p := m.mem[base+axis]
		if p < lo {
			m.mem[base+axis] = lo
			if b.velocity[axis] < 0 {
				b.velocity[axis] = -b.velocity[axis] * m.tuning.Restitution
			}
			if axis == 1 {
				m.flags |= CollideFloor
			} else {
				m.flags |= CollideWall
			}
		} else if p > hi {
			m.mem[base+axis] = hi
			if b.velocity[axis] > 0 {
				b.velocity[axis] = -b.velocity[axis] * m.tuning.Restitution
			}
			m.flags |= CollideWall
		}
	}
}

// boundsExtents returns the per-axis extents used against the world bounds:
// the radius for spheres, the half-extents for boxes.
func (m *module) boundsExtents(b *body) [3]float32 {
	if b.shapeKind == 1 {
		return b.extents
	}
	return [3]float32{b.extents[0], b.extents[0], b.extents[0]}
}

// contactRadius returns the bounding-sphere radius used for entity contacts.
// Boxes are approximated by the sphere enclosing their largest half-extent.
func contactRadius(b *body) float32 {
	r := b.extents[0]
	if b.shapeKind == 1 {
		if b.extents[1] > r {
			r = b.extents[1]
		}
		if b.extents[2] > r {
			r = b.extents[2]
		}
	}
	return r
}

// resolveContacts runs the n-squared entity pass: positional separation plus
// a restitution impulse along the contact normal. Kinematic bodies absorb no
// correction and no impulse.
func (m *module) resolveContacts() {
	n := int32(len(m.bodies))
	for i := int32(0); i < n; i++ {
		bi := &m.bodies[i]
		if !bi.active {
			continue
		}
		for j := i + 1; j < n; j++ {
			bj := &m.bodies[j]
			if !bj.active {
				continue
			}
			if bi.kinematic && bj.kinematic {
				continue
			}

			baseI := m.slotBase(i)
			baseJ := m.slotBase(j)
			var delta [3]float32
			var distSq float32
			for axis := 0; axis < 3; axis++ {
				delta[axis] = m.mem[baseJ+axis] - m.mem[baseI+axis]
				distSq += delta[axis] * delta[axis]
			}
			target := contactRadius(bi) + contactRadius(bj)
			if distSq >= target*target {
				continue
			}

			dist := float32(math.Sqrt(float64(distSq)))
			normal := [3]float32{0, 1, 0}
			if dist > 1e-6 {
				for axis := 0; axis < 3; axis++ {
					normal[axis] = delta[axis] / dist
				}
			}
			penetration := target - dist

			m.separate(i, j, bi, bj, normal, penetration)
			m.impulse(bi, bj, normal)
			m.recordContact(i, j, bi, bj)
		}
	}
}

func (m *module) separate(i, j int32, bi, bj *body, normal [3]float32, penetration float32) {
	baseI := m.slotBase(i)
	baseJ := m.slotBase(j)
	switch {
	case bi.kinematic:
		for axis := 0; axis < 3; axis++ {
			m.mem[baseJ+axis] += normal[axis] * penetration
		}
	case bj.kinematic:
		for axis := 0; axis < 3; axis++ {
			m.mem[baseI+axis] -= normal[axis] * penetration
		}
	default:
		half := penetration * 0.5
		for axis := 0; axis < 3; axis++ {
			m.mem[baseI+axis] -= normal[axis] * half
			m.mem[baseJ+axis] += normal[axis] * half
		}
	}
}

func (m *module) impulse(bi, bj *body, normal [3]float32) {
	var relVel float32
	for axis := 0; axis < 3; axis++ {
		relVel += (bj.velocity[axis] - bi.velocity[axis]) * normal[axis]
	}
	if relVel >= 0 {
		return
	}

	invMassI := invMass(bi)
	invMassJ := invMass(bj)
	if invMassI+invMassJ == 0 {
		return
	}
	impulse := -(1 + m.tuning.Restitution) * relVel / (invMassI + invMassJ)
	for axis := 0; axis < 3; axis++ {
		bi.velocity[axis] -= normal[axis] * impulse * invMassI
		bj.velocity[axis] += normal[axis] * impulse * invMassJ
	}
}

func invMass(b *body) float32 {
	if b.kinematic {
		return 0
	}
	if b.mass <= 0 {
		return 1
	}
	return 1 / b.mass
}

func (m *module) recordContact(i, j int32, bi, bj *body) {
	m.flags |= CollideEntity
	if bi.kinematic || bj.kinematic {
		m.flags |= CollideKinematic
	}
	m.eventCount++
	m.lastPair = uint64(uint32(i))<<32 | uint64(uint32(j))
	baseI := m.slotBase(i)
	baseJ := m.slotBase(j)
	for axis := 0; axis < 3; axis++ {
		m.lastPositions[0][axis] = m.mem[baseI+axis]
		m.lastPositions[1][axis] = m.mem[baseJ+axis]
	}
}

func (m *module) AddEntity(id int32, x, y, z, sx, sy, sz, r, g, b, a float32, meshIndex, materialID int32, mass, extent float32, kinematic bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.validSlot(id) || m.bodies[id].active {
		return
	}

	m.bodies[id] = body{
		active:    true,
		kinematic: kinematic,
		mass:      mass,
		shapeKind: 0,
		extents:   [3]float32{extent, extent, extent},
	}
	m.count++
	m.mem[3] = float32(m.count)

	base := m.slotBase(id)
	m.mem[base+0] = x
	m.mem[base+1] = y
	m.mem[base+2] = z
	m.mem[base+3] = 1
	m.mem[base+4] = sx
	m.mem[base+5] = sy
	m.mem[base+6] = sz
	m.mem[base+7] = float32(meshIndex)
	m.mem[base+8] = r
	m.mem[base+9] = g
	m.mem[base+10] = b
	m.mem[base+11] = a
	m.mem[base+12] = float32(materialID)
	if kinematic {
		m.mem[base+13] = 1
	} else {
		m.mem[base+13] = 0
	}
	m.mem[base+14] = 0
	m.mem[base+15] = 0
}

func (m *module) RemoveEntity(id int32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.validSlot(id) || !m.bodies[id].active {
		return
	}

	m.bodies[id] = body{}
	m.count--
	m.mem[3] = float32(m.count)

	base := m.slotBase(id)
	for i := 0; i < floatsPerEntity; i++ {
		m.mem[base+i] = 0
	}
}

func (m *module) EntityCount() int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

func (m *module) ApplyForce(id int32, x, y, z float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.activeSlot(id) || m.bodies[id].kinematic {
		return
	}
	m.bodies[id].force[0] += x
	m.bodies[id].force[1] += y
	m.bodies[id].force[2] += z
}

func (m *module) SetEntityPosition(id int32, x, y, z float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.activeSlot(id) {
		return
	}
	base := m.slotBase(id)
	m.mem[base+0] = x
	m.mem[base+1] = y
	m.mem[base+2] = z
}

func (m *module) SetEntityVelocity(id int32, x, y, z float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.activeSlot(id) {
		return
	}
	m.bodies[id].velocity = [3]float32{x, y, z}
}

func (m *module) EntityPosition(id int32) (x, y, z float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.activeSlot(id) {
		return 0, 0, 0
	}
	base := m.slotBase(id)
	return m.mem[base+0], m.mem[base+1], m.mem[base+2]
}

func (m *module) EntityVelocity(id int32) (x, y, z float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.activeSlot(id) {
		return 0, 0, 0
	}
	v := m.bodies[id].velocity
	return v[0], v[1], v[2]
}

func (m *module) Memory() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return common.SliceToBytes(m.mem)
}

func (m *module) Layout() physics.MemoryLayout {
	return physics.MemoryLayout{
		Version:          layoutVersion,
		TransformsOffset: headerFloats * 4,
		FloatsPerEntity:  floatsPerEntity,
		MaxEntities:      m.maxEntities,
	}
}

func (m *module) Version() int32 {
	return layoutVersion
}

func (m *module) CollisionEventCount() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventCount
}

func (m *module) LastCollisionPair() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPair
}

func (m *module) LastCollisionPositions() (a, b [3]float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPositions[0], m.lastPositions[1]
}

func (m *module) ClearCollisionEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventCount = 0
	m.lastPair = 0
	m.lastPositions = [2][3]float32{}
}

func (m *module) SetEntityCollisionShape(id int32, kind int32, ex, ey, ez float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.activeSlot(id) {
		return
	}
	m.bodies[id].shapeKind = kind
	m.bodies[id].extents = [3]float32{ex, ey, ez}
}

func (m *module) EntityCollisionShape(id int32) (kind int32, ex, ey, ez float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.activeSlot(id) {
		return 0, 0, 0, 0
	}
	b := m.bodies[id]
	return b.shapeKind, b.extents[0], b.extents[1], b.extents[2]
}

// Flags returns the collision flag bitmask accumulated during the most recent
// step. This is a diagnostics surface beyond the module contract.
//
// Returns:
//   - uint32: the flag bits
func (m *module) Flags() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flags
}

func (m *module) validSlot(id int32) bool {
	return m.initialized && id >= 0 && id < m.maxEntities
}

func (m *module) activeSlot(id int32) bool {
	return m.validSlot(id) && m.bodies[id].active
}

func (m *module) slotBase(id int32) int {
	return headerFloats + int(id)*floatsPerEntity
}
