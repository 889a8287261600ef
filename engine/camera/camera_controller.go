package camera

// Controller owns the camera's positional state: a world-space position
// derived from spherical coordinates (radius, azimuth, elevation) around a
// target point, plus planar panning along the camera's local axes. The
// Camera reads position and target from its Controller and computes matrices.
//
// Orbit, pan, and zoom methods take a delta that callers scale by frame time,
// so movement speed is framerate-independent.
type Controller interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetTarget sets the look-at/pivot point and recomputes position from
	// spherical coordinates.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// SetPosition sets the camera's world-space position directly, bypassing
	// the spherical coordinates.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// Orbit rotates the camera around the target. Horizontal rotation is
	// unbounded; vertical rotation is clamped to the elevation bounds.
	//
	// Parameters:
	//   - dAzimuth: horizontal rotation scaled by OrbitSpeed
	//   - dElevation: vertical rotation scaled by OrbitSpeed
	Orbit(dAzimuth, dElevation float32)

	// Zoom adjusts the orbit radius, clamped to the radius bounds. Positive
	// delta zooms in.
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)

	// PanRight translates position and target along the camera's local right
	// axis, preserving the orbit relationship.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanRight(delta float32)

	// PanUp translates position and target along the camera's local up axis.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanUp(delta float32)

	// PanForward translates position and target along the camera's local
	// forward axis (dolly).
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanForward(delta float32)

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// SetRadius sets the orbit radius directly, clamped to the radius bounds.
	//
	// Parameters:
	//   - radius: new distance from target
	SetRadius(radius float32)

	// Azimuth returns the current horizontal angle around the Y axis.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// Elevation returns the current vertical angle from the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// OrbitSpeed returns the orbit speed in radians per unit delta.
	//
	// Returns:
	//   - float32: the orbit speed multiplier
	OrbitSpeed() float32

	// ZoomSpeed returns the zoom speed multiplier.
	//
	// Returns:
	//   - float32: the zoom speed multiplier
	ZoomSpeed() float32

	// PanSpeed returns the pan speed multiplier.
	//
	// Returns:
	//   - float32: the pan speed multiplier
	PanSpeed() float32
}
