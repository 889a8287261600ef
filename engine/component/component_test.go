package component

import (
	"math"
	"testing"
)

type recordingApplier struct {
	forces     [][4]float32
	velocities [][4]float32
	positions  [][4]float32
}

func (r *recordingApplier) ApplyForce(slot int32, x, y, z float32) {
	r.forces = append(r.forces, [4]float32{float32(slot), x, y, z})
}

func (r *recordingApplier) SetVelocity(slot int32, x, y, z float32) {
	r.velocities = append(r.velocities, [4]float32{float32(slot), x, y, z})
}

func (r *recordingApplier) SetPosition(slot int32, x, y, z float32) {
	r.positions = append(r.positions, [4]float32{float32(slot), x, y, z})
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

func TestTransformLocalMatrixTranslation(t *testing.T) {
	tr := NewTransform()
	tr.SetPosition(3, -2, 5)

	m := tr.LocalMatrix()
	if m[12] != 3 || m[13] != -2 || m[14] != 5 {
		t.Fatalf("expected translation (3,-2,5), got (%v,%v,%v)", m[12], m[13], m[14])
	}
	if m[0] != 1 || m[5] != 1 || m[10] != 1 {
		t.Fatalf("expected unit scale on diagonal, got (%v,%v,%v)", m[0], m[5], m[10])
	}
}

func TestTransformLocalMatrixScaleBeforeRotation(t *testing.T) {
	tr := NewTransform()
	tr.SetScale(2, 3, 4)
	tr.SetRotation(0, 90, 0)

	m := tr.LocalMatrix()
	// A 90 degree yaw sends local +X to world -Z; scale stays on the local axis.
	if math.Abs(float64(m[2]+2)) > 1e-5 {
		t.Fatalf("expected rotated X column z component -2, got %v", m[2])
	}
	if math.Abs(float64(m[5]-3)) > 1e-5 {
		t.Fatalf("expected Y column y component 3, got %v", m[5])
	}
}

func TestMeshRendererResolution(t *testing.T) {
	mr := NewMeshRenderer("cube")
	if mr.MeshIndex() != -1 {
		t.Fatalf("expected unresolved index -1, got %d", mr.MeshIndex())
	}

	registry := &fixedRegistry{indices: map[string]int{"cube": 2}}
	if !mr.ResolveMeshIndex(registry) {
		t.Fatalf("expected resolution to succeed")
	}
	if mr.MeshIndex() != 2 {
		t.Fatalf("expected mesh index 2, got %d", mr.MeshIndex())
	}

	// Resolution is sticky even against a registry that no longer knows the id.
	if !mr.ResolveMeshIndex(&fixedRegistry{}) {
		t.Fatalf("expected resolved index to be kept")
	}
	if mr.MeshIndex() != 2 {
		t.Fatalf("expected mesh index to remain 2, got %d", mr.MeshIndex())
	}
}

func TestMeshRendererUnknownMesh(t *testing.T) {
	mr := NewMeshRenderer("missing")
	if mr.ResolveMeshIndex(&fixedRegistry{}) {
		t.Fatalf("expected resolution to fail for unregistered mesh")
	}
	if mr.MeshIndex() != -1 {
		t.Fatalf("expected index to stay -1, got %d", mr.MeshIndex())
	}
}

func TestRigidBodyUnboundIsInert(t *testing.T) {
	rb := NewRigidBody(1, SphereShape(0.5))
	if rb.Bound() {
		t.Fatalf("expected fresh body to be unbound")
	}

	// Must not panic and must not reach any simulation.
	rb.ApplyForce(1, 2, 3)
	rb.SetVelocity(4, 5, 6)
	if rb.Velocity != [3]float32{4, 5, 6} {
		t.Fatalf("expected local velocity to be recorded, got %v", rb.Velocity)
	}
}

func TestRigidBodyBoundForwardsCalls(t *testing.T) {
	rb := NewRigidBody(2, BoxShape(1, 2, 3))
	applier := &recordingApplier{}
	rb.Bind(7, applier)

	if !rb.Bound() || rb.Slot() != 7 {
		t.Fatalf("expected body bound to slot 7, got bound=%v slot=%d", rb.Bound(), rb.Slot())
	}

	rb.ApplyForce(1, 0, 0)
	rb.SetVelocity(0, -1, 0)
	if len(applier.forces) != 1 || applier.forces[0] != [4]float32{7, 1, 0, 0} {
		t.Fatalf("expected one forwarded force, got %v", applier.forces)
	}
	if len(applier.velocities) != 1 || applier.velocities[0] != [4]float32{7, 0, -1, 0} {
		t.Fatalf("expected one forwarded velocity, got %v", applier.velocities)
	}

	rb.Unbind()
	rb.ApplyForce(9, 9, 9)
	if len(applier.forces) != 1 {
		t.Fatalf("expected no forwarding after unbind, got %v", applier.forces)
	}
}

func TestCollisionShapeExtent(t *testing.T) {
	if e := SphereShape(0.5).Extent(); e != 0.5 {
		t.Fatalf("expected sphere extent 0.5, got %v", e)
	}
	if e := BoxShape(1, 4, 2).Extent(); e != 4 {
		t.Fatalf("expected box extent 4, got %v", e)
	}
}

func TestRotatorAdvancesRotation(t *testing.T) {
	tr := NewTransform()
	rot := NewRotator(tr, 0, 90, 0)

	rot.Update(0.5)
	if tr.Rotation[1] != 45 {
		t.Fatalf("expected 45 degrees yaw after half second, got %v", tr.Rotation[1])
	}
}
