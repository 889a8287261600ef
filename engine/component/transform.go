package component

import (
	"github.com/Carmen-Shannon/kinesis-go/common"
)

// Transform holds a game object's position, Euler rotation, and scale.
// Rotation is stored in degrees at the API boundary and converted to radians
// only for matrix and physics math. The local matrix composes
// Scale, then Rotate (Z*Y*X), then Translate.
//
// A Transform is mutated by its owner, by scripted behaviors, or by the
// physics bridge's read-back pass for dynamic bodies.
type Transform struct {
	Base

	Position [3]float32
	Rotation [3]float32 // degrees
	Scale    [3]float32
}

var _ Component = &Transform{}

// NewTransform creates a Transform at the origin with unit scale.
//
// Returns:
//   - *Transform: the newly created transform
func NewTransform() *Transform {
	return &Transform{
		Scale: [3]float32{1, 1, 1},
	}
}

func (t *Transform) Kind() Kind {
	return KindTransform
}

// SetPosition sets the world position.
//
// Parameters:
//   - x, y, z: new position components
func (t *Transform) SetPosition(x, y, z float32) {
	t.Position = [3]float32{x, y, z}
}

// SetRotation sets the Euler rotation in degrees.
//
// Parameters:
//   - rx, ry, rz: rotation angles in degrees
func (t *Transform) SetRotation(rx, ry, rz float32) {
	t.Rotation = [3]float32{rx, ry, rz}
}

// SetScale sets the per-axis scale factors.
//
// Parameters:
//   - sx, sy, sz: scale factors
func (t *Transform) SetScale(sx, sy, sz float32) {
	t.Scale = [3]float32{sx, sy, sz}
}

// LocalMatrix derives the 4x4 column-major local matrix from the current
// position, rotation, and scale.
//
// Returns:
//   - [16]float32: the local matrix
func (t *Transform) LocalMatrix() [16]float32 {
	var m [16]float32
	common.BuildTRSMatrix(m[:],
		t.Position[0], t.Position[1], t.Position[2],
		t.Rotation[0], t.Rotation[1], t.Rotation[2],
		t.Scale[0], t.Scale[1], t.Scale[2],
	)
	return m
}
