package input

import (
	"github.com/Carmen-Shannon/kinesis-go/common"
	"github.com/Carmen-Shannon/kinesis-go/engine/component"
)

// ForceController applies continuous forces to one entity's RigidBody through
// the bridge: W/S push along -Z/+Z, A/D along -X/+X, space pushes up. The
// controller is inert while the body is not bound to a simulation slot, so it
// can be wired before the bridge initializes.
type ForceController struct {
	keys *keySet
	body *component.RigidBody

	// Magnitude is the force applied per held direction, in simulation force
	// units.
	Magnitude float32
}

var _ Controller = &ForceController{}

// NewForceController creates a ForceController over the given body. Panics if
// body is nil.
//
// Parameters:
//   - body: the rigid body to push
//   - magnitude: the force magnitude per held direction
//
// Returns:
//   - *ForceController: the newly created controller
func NewForceController(body *component.RigidBody, magnitude float32) *ForceController {
	if body == nil {
		panic("input: force controller requires a rigid body")
	}
	return &ForceController{
		keys:      newKeySet(),
		body:      body,
		Magnitude: magnitude,
	}
}

func (f *ForceController) HandleInput(key uint32, pressed bool) {
	f.keys.set(key, pressed)
}

func (f *ForceController) Update(deltaTime float32) {
	if !f.body.Bound() {
		return
	}

	fx := f.keys.axis(common.KeyD, common.KeyA) * f.Magnitude
	fz := f.keys.axis(common.KeyS, common.KeyW) * f.Magnitude
	var fy float32
	if f.keys.down(common.KeySpace) {
		fy = f.Magnitude
	}
	if fx != 0 || fy != 0 || fz != 0 {
		f.body.ApplyForce(fx, fy, fz)
	}
}
