package sim

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/kinesis-go/common"
)

func newTestModule(t *testing.T, tuning Tuning, capacity int32) *module {
	t.Helper()
	m := NewModule(WithTuning(tuning), WithMaxEntities(capacity)).(*module)
	if err := m.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return m
}

func settleTuning() Tuning {
	return Tuning{
		Gravity:     [3]float32{0, -9.81, 0},
		Damping:     0.2,
		Restitution: 0,
		BoundsMin:   [3]float32{-50, 0, -50},
		BoundsMax:   [3]float32{50, 100, 50},
	}
}

func TestStackedSpheresSettleToRadiusSum(t *testing.T) {
	m := newTestModule(t, settleTuning(), 8)
	m.AddEntity(0, 0, 0.5, 0, 1, 1, 1, 1, 1, 1, 1, 0, 0, 1, 0.5, false)
	m.AddEntity(1, 0, 1.51, 0, 1, 1, 1, 1, 1, 1, 1, 0, 0, 1, 0.5, false)

	for i := 0; i < 600; i++ {
		m.Update(1.0 / 60.0)
	}

	_, y0, _ := m.EntityPosition(0)
	_, y1, _ := m.EntityPosition(1)
	sep := float64(y1 - y0)
	if math.Abs(sep-1.0) > 0.05 {
		t.Fatalf("expected vertical separation ~1.0 after settling, got %v (y0=%v y1=%v)", sep, y0, y1)
	}
	if math.Abs(float64(y0)-0.5) > 0.05 {
		t.Fatalf("expected bottom sphere resting at 0.5, got %v", y0)
	}
}

func TestKinematicBodyUnmovedByGravity(t *testing.T) {
	m := newTestModule(t, DefaultTuning(), 8)
	m.AddEntity(0, 2, 5, -3, 1, 1, 1, 1, 1, 1, 1, 0, 0, 1, 0.5, true)

	for i := 0; i < 100; i++ {
		m.Update(1.0 / 60.0)
	}

	x, y, z := m.EntityPosition(0)
	if x != 2 || y != 5 || z != -3 {
		t.Fatalf("expected kinematic body unmoved, got (%v,%v,%v)", x, y, z)
	}
}

func TestUnknownSlotCallsAreIgnored(t *testing.T) {
	m := newTestModule(t, DefaultTuning(), 4)

	// None of these may panic or corrupt state.
	m.ApplyForce(2, 1, 1, 1)
	m.SetEntityPosition(-1, 1, 1, 1)
	m.SetEntityVelocity(99, 1, 1, 1)
	m.RemoveEntity(3)

	if x, y, z := m.EntityPosition(2); x != 0 || y != 0 || z != 0 {
		t.Fatalf("expected zero position for unknown slot, got (%v,%v,%v)", x, y, z)
	}
	if m.EntityCount() != 0 {
		t.Fatalf("expected empty simulation, got %d entities", m.EntityCount())
	}
}

func TestRemoveZeroesSlotRecord(t *testing.T) {
	m := newTestModule(t, DefaultTuning(), 4)
	m.AddEntity(1, 3, 4, 5, 2, 2, 2, 1, 0, 0, 1, 7, 3, 1, 0.5, false)
	m.RemoveEntity(1)

	if m.EntityCount() != 0 {
		t.Fatalf("expected zero entities after removal, got %d", m.EntityCount())
	}

	layout := m.Layout()
	floats := common.BytesToFloats(m.Memory())
	base := int(layout.TransformsOffset)/4 + int(layout.FloatsPerEntity)
	for i := 0; i < int(layout.FloatsPerEntity); i++ {
		if floats[base+i] != 0 {
			t.Fatalf("expected zeroed slot record, float %d is %v", i, floats[base+i])
		}
	}

	// A force against the freed slot stays a no-op.
	m.ApplyForce(1, 10, 10, 10)
	m.Update(1.0 / 60.0)
}

func TestSharedMemoryRecordContents(t *testing.T) {
	m := newTestModule(t, DefaultTuning(), 4)
	m.AddEntity(2, 1, 2, 3, 4, 5, 6, 0.1, 0.2, 0.3, 0.4, 9, 11, 1, 0.5, true)

	layout := m.Layout()
	if layout.Version != 1 || layout.FloatsPerEntity != 16 || layout.TransformsOffset != 64 {
		t.Fatalf("unexpected layout: %+v", layout)
	}

	floats := common.BytesToFloats(m.Memory())
	base := int(layout.TransformsOffset)/4 + 2*int(layout.FloatsPerEntity)
	want := []float32{1, 2, 3, 1, 4, 5, 6, 9, 0.1, 0.2, 0.3, 0.4, 11, 1}
	for i, w := range want {
		if floats[base+i] != w {
			t.Fatalf("record float %d: expected %v, got %v", i, w, floats[base+i])
		}
	}
}

func TestCollisionEventReporting(t *testing.T) {
	tuning := settleTuning()
	tuning.Gravity = [3]float32{}
	m := newTestModule(t, tuning, 4)

	m.AddEntity(0, -0.4, 5, 0, 1, 1, 1, 1, 1, 1, 1, 0, 0, 1, 0.5, false)
	m.AddEntity(1, 0.4, 5, 0, 1, 1, 1, 1, 1, 1, 1, 0, 0, 1, 0.5, false)
	m.Update(1.0 / 60.0)

	if m.CollisionEventCount() == 0 {
		t.Fatalf("expected collision event for overlapping spheres")
	}
	pair := m.LastCollisionPair()
	if pair>>32 != 0 || pair&0xffffffff != 1 {
		t.Fatalf("expected packed pair (0,1), got %x", pair)
	}
	a, b := m.LastCollisionPositions()
	if a == b {
		t.Fatalf("expected distinct contact positions")
	}
	if m.Flags()&CollideEntity == 0 {
		t.Fatalf("expected entity collision flag, got %b", m.Flags())
	}

	m.ClearCollisionEvents()
	if m.CollisionEventCount() != 0 || m.LastCollisionPair() != 0 {
		t.Fatalf("expected cleared collision state")
	}
}

func TestKinematicContactFlag(t *testing.T) {
	tuning := settleTuning()
	tuning.Gravity = [3]float32{}
	m := newTestModule(t, tuning, 4)

	m.AddEntity(0, 0, 5, 0, 1, 1, 1, 1, 1, 1, 1, 0, 0, 1, 0.5, true)
	m.AddEntity(1, 0.3, 5, 0, 1, 1, 1, 1, 1, 1, 1, 0, 0, 1, 0.5, false)
	m.Update(1.0 / 60.0)

	if m.Flags()&CollideKinematic == 0 {
		t.Fatalf("expected kinematic collision flag, got %b", m.Flags())
	}
	// The kinematic body absorbs no correction.
	if x, _, _ := m.EntityPosition(0); x != 0 {
		t.Fatalf("expected kinematic body unmoved, got x=%v", x)
	}
	// The dynamic body is pushed clear of the overlap.
	x, _, _ := m.EntityPosition(1)
	if x < 0.99 {
		t.Fatalf("expected dynamic body pushed to >= 1.0, got x=%v", x)
	}
}

func TestBoxBoundsUsePerAxisExtents(t *testing.T) {
	tuning := settleTuning()
	m := newTestModule(t, tuning, 4)
	m.AddEntity(0, 0, 10, 0, 1, 1, 1, 1, 1, 1, 1, 0, 0, 1, 2, false)
	m.SetEntityCollisionShape(0, 1, 0.5, 0.25, 0.5)

	kind, ex, ey, ez := m.EntityCollisionShape(0)
	if kind != 1 || ex != 0.5 || ey != 0.25 || ez != 0.5 {
		t.Fatalf("unexpected shape readback: kind=%d extents=(%v,%v,%v)", kind, ex, ey, ez)
	}

	for i := 0; i < 600; i++ {
		m.Update(1.0 / 60.0)
	}
	_, y, _ := m.EntityPosition(0)
	if math.Abs(float64(y)-0.25) > 0.05 {
		t.Fatalf("expected box resting on its y half-extent 0.25, got %v", y)
	}
	if m.Flags()&CollideFloor == 0 {
		t.Fatalf("expected floor flag while resting, got %b", m.Flags())
	}
}

func TestLoadTuningMissingFileKeepsDefaults(t *testing.T) {
	tuning, err := LoadTuning(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if tuning != DefaultTuning() {
		t.Fatalf("expected defaults for missing file, got %+v", tuning)
	}
}

func TestLoadTuningOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	data := "gravity: [0, -3.7, 0]\nrestitution: 0.9\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	tuning, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if tuning.Gravity != [3]float32{0, -3.7, 0} {
		t.Fatalf("expected overridden gravity, got %v", tuning.Gravity)
	}
	if tuning.Restitution != 0.9 {
		t.Fatalf("expected overridden restitution, got %v", tuning.Restitution)
	}
	if tuning.Damping != DefaultTuning().Damping {
		t.Fatalf("expected default damping preserved, got %v", tuning.Damping)
	}
}
