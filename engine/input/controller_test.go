package input

import (
	"testing"

	"github.com/Carmen-Shannon/kinesis-go/common"
	"github.com/Carmen-Shannon/kinesis-go/engine/camera"
	"github.com/Carmen-Shannon/kinesis-go/engine/component"
)

type recordingApplier struct {
	forces [][4]float32
}

func (r *recordingApplier) ApplyForce(slot int32, x, y, z float32) {
	r.forces = append(r.forces, [4]float32{float32(slot), x, y, z})
}

func (r *recordingApplier) SetVelocity(slot int32, x, y, z float32) {}

func (r *recordingApplier) SetPosition(slot int32, x, y, z float32) {}

func TestFreeFlyOpposingKeysCancel(t *testing.T) {
	cc := camera.NewController(camera.WithPanSpeed(1))
	ctrl := NewFreeFlyController(cc)

	px, py, pz := cc.Position()
	ctrl.HandleInput(common.KeyW, true)
	ctrl.HandleInput(common.KeyS, true)
	ctrl.Update(1)

	if x, y, z := cc.Position(); x != px || y != py || z != pz {
		t.Fatalf("expected no movement with opposing keys held, moved to (%v,%v,%v)", x, y, z)
	}

	ctrl.HandleInput(common.KeyS, false)
	ctrl.Update(1)
	if x, y, z := cc.Position(); x == px && y == py && z == pz {
		t.Fatalf("expected movement after release of opposing key")
	}
}

func TestFreeFlyMultiKeyComposition(t *testing.T) {
	cc := camera.NewController(camera.WithPanSpeed(1), camera.WithAzimuth(0))
	ctrl := NewFreeFlyController(cc)

	px, _, pz := cc.Position()
	ctrl.HandleInput(common.KeyW, true)
	ctrl.HandleInput(common.KeyD, true)
	ctrl.Update(0.5)

	x, _, z := cc.Position()
	if x == px || z == pz {
		t.Fatalf("expected diagonal movement on both axes, got (%v,%v) from (%v,%v)", x, z, px, pz)
	}
}

func TestOrbitControllerYawAndZoom(t *testing.T) {
	cc := camera.NewController(camera.WithRadius(10), camera.WithOrbitSpeed(1), camera.WithZoomSpeed(1))
	ctrl := NewOrbitController(cc)

	az := cc.Azimuth()
	ctrl.HandleInput(common.KeyRight, true)
	ctrl.Update(0.25)
	if cc.Azimuth() != az+0.25 {
		t.Fatalf("expected azimuth advanced by 0.25, got %v", cc.Azimuth())
	}
	ctrl.HandleInput(common.KeyRight, false)

	r := cc.Radius()
	ctrl.HandleInput(common.KeyZ, true)
	ctrl.Update(1)
	if cc.Radius() >= r {
		t.Fatalf("expected zoom in to reduce radius, got %v from %v", cc.Radius(), r)
	}
}

func TestForceControllerInertUntilBound(t *testing.T) {
	rb := component.NewRigidBody(1, component.SphereShape(0.5))
	ctrl := NewForceController(rb, 10)
	applier := &recordingApplier{}

	ctrl.HandleInput(common.KeyD, true)
	ctrl.Update(1.0 / 60.0)
	if len(applier.forces) != 0 {
		t.Fatalf("expected no forces before binding, got %v", applier.forces)
	}

	rb.Bind(4, applier)
	ctrl.Update(1.0 / 60.0)
	if len(applier.forces) != 1 || applier.forces[0] != [4]float32{4, 10, 0, 0} {
		t.Fatalf("expected +X force on slot 4, got %v", applier.forces)
	}
}

func TestForceControllerComposesDirections(t *testing.T) {
	rb := component.NewRigidBody(1, component.SphereShape(0.5))
	applier := &recordingApplier{}
	rb.Bind(0, applier)
	ctrl := NewForceController(rb, 5)

	ctrl.HandleInput(common.KeyW, true)
	ctrl.HandleInput(common.KeySpace, true)
	ctrl.Update(1.0 / 60.0)

	if len(applier.forces) != 1 || applier.forces[0] != [4]float32{0, 0, 5, -5} {
		t.Fatalf("expected combined up and -Z force, got %v", applier.forces)
	}
}
