package camera

// ControllerBuilderOption is a functional option for configuring a Controller
// during construction.
type ControllerBuilderOption func(*controllerImpl)

// WithRadius sets the initial orbit radius (distance from target).
//
// Parameters:
//   - radius: distance from the orbit target
//
// Returns:
//   - ControllerBuilderOption: functional option to set the radius
func WithRadius(radius float32) ControllerBuilderOption {
	return func(cc *controllerImpl) {
		cc.radius = radius
	}
}

// WithAzimuth sets the initial horizontal angle around the Y axis.
//
// Parameters:
//   - azimuth: horizontal angle in radians (0 = +Z axis)
//
// Returns:
//   - ControllerBuilderOption: functional option to set the azimuth
func WithAzimuth(azimuth float32) ControllerBuilderOption {
	return func(cc *controllerImpl) {
		cc.azimuth = azimuth
	}
}

// WithElevation sets the initial vertical angle from the horizontal plane.
//
// Parameters:
//   - elevation: vertical angle in radians (0 = horizontal)
//
// Returns:
//   - ControllerBuilderOption: functional option to set the elevation
func WithElevation(elevation float32) ControllerBuilderOption {
	return func(cc *controllerImpl) {
		cc.elevation = elevation
	}
}

// WithOrbitTarget sets the look-at/pivot point.
//
// Parameters:
//   - x, y, z: world-space coordinates of the target
//
// Returns:
//   - ControllerBuilderOption: functional option to set the target position
func WithOrbitTarget(x, y, z float32) ControllerBuilderOption {
	return func(cc *controllerImpl) {
		cc.target = [3]float32{x, y, z}
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - ControllerBuilderOption: functional option to set the radius bounds
func WithRadiusBounds(min, max float32) ControllerBuilderOption {
	return func(cc *controllerImpl) {
		cc.minRadius = min
		cc.maxRadius = max
	}
}

// WithElevationBounds sets the minimum and maximum elevation angles.
//
// Parameters:
//   - min: minimum vertical angle in radians
//   - max: maximum vertical angle in radians
//
// Returns:
//   - ControllerBuilderOption: functional option to set the elevation bounds
func WithElevationBounds(min, max float32) ControllerBuilderOption {
	return func(cc *controllerImpl) {
		cc.minElevation = min
		cc.maxElevation = max
	}
}

// WithOrbitSpeed sets the orbit speed in radians per unit delta.
//
// Parameters:
//   - speed: the orbit speed multiplier
//
// Returns:
//   - ControllerBuilderOption: functional option to set the orbit speed
func WithOrbitSpeed(speed float32) ControllerBuilderOption {
	return func(cc *controllerImpl) {
		cc.orbitSpeed = speed
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
//
// Parameters:
//   - speed: the zoom speed multiplier
//
// Returns:
//   - ControllerBuilderOption: functional option to set the zoom speed
func WithZoomSpeed(speed float32) ControllerBuilderOption {
	return func(cc *controllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithPanSpeed sets the planar pan speed multiplier.
//
// Parameters:
//   - speed: the pan speed multiplier
//
// Returns:
//   - ControllerBuilderOption: functional option to set the pan speed
func WithPanSpeed(speed float32) ControllerBuilderOption {
	return func(cc *controllerImpl) {
		cc.panSpeed = speed
	}
}
