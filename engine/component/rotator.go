package component

// Rotator spins its bound Transform at a constant Euler rate. It is the
// canonical scripted behavior: pure Transform mutation, no simulation or
// render linkage.
type Rotator struct {
	Base

	// Speed is the rotation rate per axis in degrees per second.
	Speed [3]float32

	transform *Transform
}

var _ Component = &Rotator{}

// NewRotator creates a Rotator driving the given transform.
//
// Parameters:
//   - transform: the transform to rotate
//   - sx, sy, sz: rotation rates per axis in degrees per second
//
// Returns:
//   - *Rotator: the newly created rotator
func NewRotator(transform *Transform, sx, sy, sz float32) *Rotator {
	return &Rotator{
		Speed:     [3]float32{sx, sy, sz},
		transform: transform,
	}
}

func (r *Rotator) Kind() Kind {
	return KindRotator
}

func (r *Rotator) Update(deltaTime float32) {
	if r.transform == nil {
		return
	}
	r.transform.Rotation[0] += r.Speed[0] * deltaTime
	r.transform.Rotation[1] += r.Speed[1] * deltaTime
	r.transform.Rotation[2] += r.Speed[2] * deltaTime
}
