package input

import (
	"github.com/Carmen-Shannon/kinesis-go/common"
	"github.com/Carmen-Shannon/kinesis-go/engine/camera"
)

// OrbitController drives a camera controller around its fixed target: arrow
// keys orbit (yaw/pitch), Z zooms in, X zooms out.
type OrbitController struct {
	keys   *keySet
	target camera.Controller
}

var _ Controller = &OrbitController{}

// NewOrbitController creates an OrbitController over the given camera
// controller. Panics if target is nil.
//
// Parameters:
//   - target: the camera controller to orbit
//
// Returns:
//   - *OrbitController: the newly created controller
func NewOrbitController(target camera.Controller) *OrbitController {
	if target == nil {
		panic("input: orbit controller requires a camera controller")
	}
	return &OrbitController{
		keys:   newKeySet(),
		target: target,
	}
}

func (o *OrbitController) HandleInput(key uint32, pressed bool) {
	o.keys.set(key, pressed)
}

func (o *OrbitController) Update(deltaTime float32) {
	dAzimuth := o.keys.axis(common.KeyRight, common.KeyLeft) * deltaTime
	dElevation := o.keys.axis(common.KeyUp, common.KeyDown) * deltaTime
	if dAzimuth != 0 || dElevation != 0 {
		o.target.Orbit(dAzimuth, dElevation)
	}
	if v := o.keys.axis(common.KeyZ, common.KeyX); v != 0 {
		o.target.Zoom(v * deltaTime)
	}
}
