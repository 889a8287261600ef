package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/kinesis-go/engine/component"
)

func TestComponentKindUniqueness(t *testing.T) {
	obj := NewGameObject(WithName("box"))
	obj.AddComponent(component.NewTransform())

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate component kind")
		}
	}()
	obj.AddComponent(component.NewTransform())
}

func TestComponentAccessors(t *testing.T) {
	tr := component.NewTransform()
	mr := component.NewMeshRenderer("sphere")
	rb := component.NewRigidBody(1, component.SphereShape(0.5))

	obj := NewGameObject(
		WithName("ball"),
		WithTag("dynamic"),
		WithComponent(tr),
		WithComponent(mr),
		WithComponent(rb),
	)

	if obj.Transform() != tr {
		t.Fatalf("expected transform accessor to return attached component")
	}
	if obj.MeshRenderer() != mr {
		t.Fatalf("expected mesh renderer accessor to return attached component")
	}
	if obj.RigidBody() != rb {
		t.Fatalf("expected rigid body accessor to return attached component")
	}
	if obj.Component(component.KindRotator) != nil {
		t.Fatalf("expected nil for unattached kind")
	}
}

func TestUpdateSkipsDisabledObjects(t *testing.T) {
	tr := component.NewTransform()
	rot := component.NewRotator(tr, 0, 90, 0)
	obj := NewGameObject(WithComponent(tr), WithComponent(rot))

	obj.SetEnabled(false)
	obj.Update(1)
	if tr.Rotation[1] != 0 {
		t.Fatalf("expected no rotation while disabled, got %v", tr.Rotation[1])
	}

	obj.SetEnabled(true)
	obj.Update(1)
	if tr.Rotation[1] != 90 {
		t.Fatalf("expected 90 degrees after enabled update, got %v", tr.Rotation[1])
	}
}

func TestReparenting(t *testing.T) {
	root := NewGameObject(WithName("root"))
	other := NewGameObject(WithName("other"))
	child := NewGameObject(WithName("child"), WithParent(root))

	if child.Parent() != root || len(root.Children()) != 1 {
		t.Fatalf("expected child under root")
	}

	child.SetParent(other)
	if child.Parent() != other {
		t.Fatalf("expected child under other after reparent")
	}
	if len(root.Children()) != 0 {
		t.Fatalf("expected root to have no children after reparent, got %d", len(root.Children()))
	}
	if len(other.Children()) != 1 {
		t.Fatalf("expected other to have one child, got %d", len(other.Children()))
	}

	child.SetParent(nil)
	if child.Parent() != nil || len(other.Children()) != 0 {
		t.Fatalf("expected child detached")
	}
}

func TestDestroyClearsComponents(t *testing.T) {
	obj := NewGameObject(WithComponent(component.NewTransform()))
	obj.Destroy()
	if obj.Transform() != nil {
		t.Fatalf("expected components cleared after destroy")
	}
}
