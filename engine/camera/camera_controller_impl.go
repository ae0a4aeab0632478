package camera

import (
	"math"
	"sync"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl32"
)

type dragMode int

const (
	dragNone dragMode = iota
	dragRotate
	dragPan
)

// springAxis is one damped scalar: the value shown, its velocity and where input wants it.
type springAxis struct {
	pos, vel, goal float64
}

func (a *springAxis) step(s *harmonica.Spring) {
	a.pos, a.vel = s.Update(a.pos, a.vel, a.goal)
}

func (a *springAxis) snap() {
	a.pos = a.goal
	a.vel = 0
}

// orbitController is the single implementation of OrbitController.
type orbitController struct {
	mu *sync.Mutex

	target          mgl32.Vec3
	initialPosition *mgl32.Vec3

	azimuth   springAxis
	elevation springAxis
	radius    springAxis
	targetX   springAxis
	targetY   springAxis
	targetZ   springAxis

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	rotateSpeed float32
	panSpeed    float32
	zoomSpeed   float32

	// angularFrequency of zero means input snaps without easing.
	angularFrequency float64

	drag         dragMode
	lastX, lastY int32
}

var _ OrbitController = &orbitController{}

// NewOrbitController creates an orbit controller. Without WithOrbitPosition the eye starts
// 10 units from the target on +Z.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(options ...CameraControllerOption) OrbitController {
	oc := &orbitController{
		mu:               &sync.Mutex{},
		minRadius:        1,
		maxRadius:        500,
		minElevation:     -float32(math.Pi/2) + 0.01,
		maxElevation:     float32(math.Pi/2) - 0.01,
		rotateSpeed:      0.005,
		panSpeed:         0.002,
		zoomSpeed:        0.1,
		angularFrequency: 8,
	}
	oc.radius.goal = 10

	for _, option := range options {
		option(oc)
	}

	oc.targetX.goal = float64(oc.target[0])
	oc.targetY.goal = float64(oc.target[1])
	oc.targetZ.goal = float64(oc.target[2])
	if oc.initialPosition != nil {
		oc.setSpherical(oc.initialPosition.Sub(oc.target))
	}
	oc.clampGoals()
	oc.snapAll()
	return oc
}

// --- internal helpers ---

// setSpherical derives goal azimuth, elevation and radius from an eye offset.
// Caller must hold the mutex (or own oc exclusively).
func (oc *orbitController) setSpherical(offset mgl32.Vec3) {
	r := offset.Len()
	if r < 1e-6 {
		return
	}
	oc.radius.goal = float64(r)
	oc.elevation.goal = math.Asin(float64(offset[1] / r))
	oc.azimuth.goal = math.Atan2(float64(offset[0]), float64(offset[2]))
}

func (oc *orbitController) clampGoals() {
	oc.radius.goal = clamp(oc.radius.goal, float64(oc.minRadius), float64(oc.maxRadius))
	oc.elevation.goal = clamp(oc.elevation.goal, float64(oc.minElevation), float64(oc.maxElevation))
}

func (oc *orbitController) snapAll() {
	for _, a := range oc.axes() {
		a.snap()
	}
}

func (oc *orbitController) axes() []*springAxis {
	return []*springAxis{&oc.azimuth, &oc.elevation, &oc.radius, &oc.targetX, &oc.targetY, &oc.targetZ}
}

// direction returns the unit vector from target to eye for the current angles.
func (oc *orbitController) direction() mgl32.Vec3 {
	cosE, sinE := math.Cos(oc.elevation.pos), math.Sin(oc.elevation.pos)
	cosA, sinA := math.Cos(oc.azimuth.pos), math.Sin(oc.azimuth.pos)
	return mgl32.Vec3{float32(cosE * sinA), float32(sinE), float32(cosE * cosA)}
}

func (oc *orbitController) currentTarget() mgl32.Vec3 {
	return mgl32.Vec3{float32(oc.targetX.pos), float32(oc.targetY.pos), float32(oc.targetZ.pos)}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// --- OrbitController ---

func (oc *orbitController) Position() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.currentTarget().Add(oc.direction().Mul(float32(oc.radius.pos)))
}

func (oc *orbitController) Target() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.currentTarget()
}

func (oc *orbitController) Radius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return float32(oc.radius.pos)
}

func (oc *orbitController) Azimuth() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return float32(oc.azimuth.pos)
}

func (oc *orbitController) Elevation() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return float32(oc.elevation.pos)
}

func (oc *orbitController) SetPosition(position mgl32.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.setSpherical(position.Sub(oc.currentTarget()))
	oc.clampGoals()
	oc.azimuth.snap()
	oc.elevation.snap()
	oc.radius.snap()
}

func (oc *orbitController) SetTarget(target mgl32.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.targetX.goal = float64(target[0])
	oc.targetY.goal = float64(target[1])
	oc.targetZ.goal = float64(target[2])
	oc.targetX.snap()
	oc.targetY.snap()
	oc.targetZ.snap()
}

func (oc *orbitController) BeginRotate(x, y int32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.drag, oc.lastX, oc.lastY = dragRotate, x, y
}

func (oc *orbitController) BeginPan(x, y int32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.drag, oc.lastX, oc.lastY = dragPan, x, y
}

func (oc *orbitController) EndDrag() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.drag = dragNone
}

func (oc *orbitController) MouseMove(x, y int32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	dx, dy := float64(x-oc.lastX), float64(y-oc.lastY)
	oc.lastX, oc.lastY = x, y

	switch oc.drag {
	case dragRotate:
		// Dragging right swings the eye left around the target; dragging down raises it.
		oc.azimuth.goal -= dx * float64(oc.rotateSpeed)
		oc.elevation.goal += dy * float64(oc.rotateSpeed)
		oc.clampGoals()
	case dragPan:
		sinA, cosA := math.Sincos(oc.azimuth.pos)
		right := mgl32.Vec3{float32(cosA), 0, float32(-sinA)}
		up := oc.direction().Cross(right)
		scale := float32(oc.panSpeed) * float32(oc.radius.goal)
		delta := right.Mul(-float32(dx) * scale).Add(up.Mul(float32(dy) * scale))
		oc.targetX.goal += float64(delta[0])
		oc.targetY.goal += float64(delta[1])
		oc.targetZ.goal += float64(delta[2])
	}
	if oc.angularFrequency == 0 {
		oc.snapAll()
	}
}

func (oc *orbitController) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.radius.goal *= math.Pow(1-float64(oc.zoomSpeed), float64(delta))
	oc.clampGoals()
	if oc.angularFrequency == 0 {
		oc.radius.snap()
	}
}

func (oc *orbitController) Update(dt float32) {
	if dt <= 0 {
		return
	}
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if oc.angularFrequency == 0 {
		oc.snapAll()
		return
	}
	spring := harmonica.NewSpring(float64(dt), oc.angularFrequency, 1.0)
	for _, a := range oc.axes() {
		a.step(&spring)
	}
}
