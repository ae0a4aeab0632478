package camera

import "github.com/go-gl/mathgl/mgl32"

// OrbitController moves an eye around a target point on a sphere.
// Input changes goal values (azimuth, elevation, radius, target); Update moves the
// current values toward the goals through critically damped springs.
type OrbitController interface {
	// Position returns the current eye position.
	Position() mgl32.Vec3

	// Target returns the current look-at point.
	Target() mgl32.Vec3

	// Radius returns the current distance from the target.
	Radius() float32

	// Azimuth returns the current horizontal angle around the Y axis (0 = +Z).
	Azimuth() float32

	// Elevation returns the current vertical angle above the horizontal plane.
	Elevation() float32

	// SetPosition places the eye immediately, deriving the spherical coordinates from the
	// offset to the current target. Goals and spring velocities are reset.
	SetPosition(position mgl32.Vec3)

	// SetTarget moves the look-at point immediately.
	SetTarget(target mgl32.Vec3)

	// BeginRotate starts a rotate drag at the given cursor position.
	BeginRotate(x, y int32)

	// BeginPan starts a pan drag at the given cursor position.
	BeginPan(x, y int32)

	// EndDrag ends the current drag, if any.
	EndDrag()

	// MouseMove feeds a cursor position to the current drag.
	MouseMove(x, y int32)

	// Zoom changes the goal radius (positive delta moves closer).
	Zoom(delta float32)

	// Update advances the springs by dt seconds.
	Update(dt float32)
}
