package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring an OrbitController.
type CameraControllerOption func(*orbitController)

// WithOrbitTarget sets the initial look-at point.
//
// Parameters:
//   - target: the point the eye orbits around
//
// Returns:
//   - CameraControllerOption: functional option to set the target
func WithOrbitTarget(target mgl32.Vec3) CameraControllerOption {
	return func(oc *orbitController) {
		oc.target = target
	}
}

// WithOrbitPosition sets the initial eye position. Spherical coordinates are derived
// from the offset to the target once every option has been applied.
//
// Parameters:
//   - position: world-space eye position
//
// Returns:
//   - CameraControllerOption: functional option to set the eye position
func WithOrbitPosition(position mgl32.Vec3) CameraControllerOption {
	return func(oc *orbitController) {
		p := position
		oc.initialPosition = &p
	}
}

// WithRadiusLimits clamps the orbit distance.
//
// Parameters:
//   - minRadius: closest allowed distance to the target
//   - maxRadius: farthest allowed distance to the target
//
// Returns:
//   - CameraControllerOption: functional option to set the limits
func WithRadiusLimits(minRadius, maxRadius float32) CameraControllerOption {
	return func(oc *orbitController) {
		oc.minRadius = minRadius
		oc.maxRadius = maxRadius
	}
}

// WithElevationLimits clamps the vertical angle, in radians.
func WithElevationLimits(minElevation, maxElevation float32) CameraControllerOption {
	return func(oc *orbitController) {
		oc.minElevation = minElevation
		oc.maxElevation = maxElevation
	}
}

// WithRotateSpeed sets the radians of rotation per pixel of drag.
func WithRotateSpeed(speed float32) CameraControllerOption {
	return func(oc *orbitController) {
		oc.rotateSpeed = speed
	}
}

// WithPanSpeed sets the pan distance per pixel of drag, as a fraction of the radius.
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(oc *orbitController) {
		oc.panSpeed = speed
	}
}

// WithZoomSpeed sets how strongly one scroll step scales the radius.
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(oc *orbitController) {
		oc.zoomSpeed = speed
	}
}

// WithDamping sets the spring angular frequency used to ease toward the goals.
// A frequency of zero disables damping and input applies immediately.
//
// Parameters:
//   - angularFrequency: spring speed; higher settles faster
//
// Returns:
//   - CameraControllerOption: functional option to set the damping
func WithDamping(angularFrequency float64) CameraControllerOption {
	return func(oc *orbitController) {
		if angularFrequency < 0 {
			angularFrequency = 0
		}
		oc.angularFrequency = angularFrequency
	}
}
