package game

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-robot/common"
	"github.com/Carmen-Shannon/oxy-robot/engine/camera"
	"github.com/Carmen-Shannon/oxy-robot/engine/game_object"
	"github.com/Carmen-Shannon/oxy-robot/engine/loader"
	"github.com/Carmen-Shannon/oxy-robot/engine/model"
	"github.com/Carmen-Shannon/oxy-robot/engine/scene"
	"github.com/Carmen-Shannon/oxy-robot/engine/window"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePending resolves after a number of polls.
type fakePending struct {
	pollsLeft int
	result    loader.Result
	polls     int
}

func (f *fakePending) Path() string {
	return "RobotExpressive.glb"
}

func (f *fakePending) Poll() (loader.Result, bool) {
	f.polls++
	if f.pollsLeft > 0 {
		f.pollsLeft--
		return loader.Result{}, false
	}
	return f.result, true
}

type fakeScene struct {
	scene.Scene
	cam   camera.Camera
	added []game_object.GameObject
	err   error
}

func (s *fakeScene) Add(obj game_object.GameObject) (uint64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.added = append(s.added, obj)
	return obj.ID(), nil
}

func (s *fakeScene) Camera() camera.Camera {
	return s.cam
}

// countingController wraps a real controller and counts mixer updates.
type countingController struct {
	AnimationController
	updates int
}

func (c *countingController) Update(dt float32) {
	c.updates++
	c.AnimationController.Update(dt)
}

type fakeOrbit struct {
	camera.OrbitController
	calls   []string
	updates int
}

func (o *fakeOrbit) Update(float32) { o.updates++ }
func (o *fakeOrbit) BeginRotate(x, y int32) { o.calls = append(o.calls, "rotate") }
func (o *fakeOrbit) BeginPan(x, y int32) { o.calls = append(o.calls, "pan") }
func (o *fakeOrbit) EndDrag() { o.calls = append(o.calls, "end") }
func (o *fakeOrbit) MouseMove(x, y int32) { o.calls = append(o.calls, "move") }
func (o *fakeOrbit) Zoom(delta float32) { o.calls = append(o.calls, "zoom") }
func (o *fakeOrbit) Position() mgl32.Vec3 { return mgl32.Vec3{0, 0, 10} }
func (o *fakeOrbit) Target() mgl32.Vec3 { return mgl32.Vec3{} }

type fakeWindow struct {
	window.Window
	keyDown   func(uint32)
	keyUp     func(uint32)
	mouseDown func(window.MouseButton, int32, int32)
	mouseUp   func(window.MouseButton, int32, int32)
	mouseMove func(int32, int32)
	scroll    func(float32)
}

func (w *fakeWindow) SetKeyDownCallback(cb func(uint32)) { w.keyDown = cb }
func (w *fakeWindow) SetKeyUpCallback(cb func(uint32)) { w.keyUp = cb }
func (w *fakeWindow) SetMouseDownCallback(cb func(window.MouseButton, int32, int32)) {
	w.mouseDown = cb
}
func (w *fakeWindow) SetMouseUpCallback(cb func(window.MouseButton, int32, int32)) {
	w.mouseUp = cb
}
func (w *fakeWindow) SetMouseMoveCallback(cb func(int32, int32)) { w.mouseMove = cb }
func (w *fakeWindow) SetScrollCallback(cb func(float32)) { w.scroll = cb }

type appFixture struct {
	app     App
	scene   *fakeScene
	orbit   *fakeOrbit
	pending *fakePending
	ctrl    *countingController
}

func newAppFixture(result loader.Result, pollsLeft int) *appFixture {
	f := &appFixture{
		orbit:   &fakeOrbit{},
		pending: &fakePending{pollsLeft: pollsLeft, result: result},
	}
	f.scene = &fakeScene{cam: camera.NewCamera(camera.WithController(f.orbit))}
	f.app = NewApp(f.scene, f.orbit, f.pending, WithControllerFactory(func(m model.Model) AnimationController {
		f.ctrl = &countingController{AnimationController: NewAnimationController(m)}
		return f.ctrl
	}))
	return f
}

func TestAppAddsPlayerWhenLoadResolves(t *testing.T) {
	robot := testRobot("Idle", "Walking", "Jump")
	f := newAppFixture(loader.Result{Model: robot}, 2)

	f.app.Frame(0)
	f.app.Frame(0.016)
	assert.Nil(t, f.app.Player())
	assert.False(t, f.app.Controller().Loaded())

	f.app.Frame(0.016)
	require.NotNil(t, f.app.Player())
	assert.Equal(t, []game_object.GameObject{f.app.Player()}, f.scene.added)
	assert.Same(t, robot, f.app.Player().Model())

	c := f.app.Controller()
	require.True(t, c.Loaded())
	assert.Equal(t, StateIdle, c.Active())
	assert.True(t, c.Action("Idle").IsRunning())
	assert.Equal(t, float32(1), c.Action("Idle").EffectiveWeight())
	assert.False(t, c.Action("Walking").IsScheduled())
	assert.False(t, c.Action("Jump").IsScheduled())

	assert.Equal(t, 1, f.ctrl.updates, "mixer advanced from the resolving frame on")
	assert.Equal(t, 3, f.orbit.updates)

	f.app.Frame(0.016)
	assert.Equal(t, 3, f.pending.polls, "result consumed once")
}

func TestAppInputReachesControllerAfterLoad(t *testing.T) {
	f := newAppFixture(loader.Result{Model: testRobot("Idle", "Walking")}, 0)
	f.app.Input().KeyDown(common.KeyW)
	assert.Empty(t, f.app.Controller().Active(), "no-op before the model arrives")

	f.app.Frame(0.016)
	f.app.Input().KeyDown(common.KeyW)

	assert.Equal(t, StateWalking, f.app.Controller().Active())
	assert.InDelta(t, 0.27, f.app.Player().Position()[2], 1e-5)
}

func TestAppAppliesPoseToPlayer(t *testing.T) {
	f := newAppFixture(loader.Result{Model: testRobot("Idle")}, 0)

	f.app.Frame(0)
	before := f.app.Player().Joints()[0]
	f.app.Frame(0.5)
	after := f.app.Player().Joints()[0]

	assert.InDelta(t, 0.5, after.Col(3)[1]-before.Col(3)[1], 1e-5)
}

func TestAppLoadFailureKeepsTicking(t *testing.T) {
	f := newAppFixture(loader.Result{Err: errors.New("file not found")}, 0)

	assert.NotPanics(t, func() {
		for i := 0; i < 10; i++ {
			f.app.Frame(0.016)
		}
		f.app.Input().KeyDown(common.KeyW)
		f.app.Input().KeyUp(common.KeyW)
	})

	assert.Nil(t, f.app.Player())
	assert.Nil(t, f.ctrl, "controller never built, so the mixer is never updated")
	assert.False(t, f.app.Controller().Loaded())
	assert.Empty(t, f.scene.added)
	assert.Equal(t, 10, f.orbit.updates)
	assert.Equal(t, 1, f.pending.polls)
}

func TestAppSceneAddFailureLeavesNoPlayer(t *testing.T) {
	f := newAppFixture(loader.Result{Model: testRobot("Idle")}, 0)
	f.scene.err = errors.New("out of memory")

	f.app.Frame(0.016)

	assert.Nil(t, f.app.Player())
	assert.False(t, f.app.Controller().Loaded())
}

func TestAppDiscardsLateResultAfterClose(t *testing.T) {
	f := newAppFixture(loader.Result{Model: testRobot("Idle")}, 1)

	f.app.Frame(0.016)
	f.app.Close()
	f.app.Frame(0.016)

	assert.Nil(t, f.app.Player())
	assert.Empty(t, f.scene.added)
	assert.Equal(t, 1, f.pending.polls)
	assert.Equal(t, 1, f.orbit.updates)
}

func TestAppWithoutPendingLoad(t *testing.T) {
	orbit := &fakeOrbit{}
	a := NewApp(&fakeScene{cam: camera.NewCamera()}, orbit, nil)

	assert.NotPanics(t, func() { a.Frame(0.016) })
	assert.Equal(t, 1, orbit.updates)
}

func TestAppBindRoutesInput(t *testing.T) {
	f := newAppFixture(loader.Result{Model: testRobot("Idle", "Walking")}, 0)
	f.app.Frame(0)
	win := &fakeWindow{}
	f.app.Bind(win)

	win.mouseDown(window.MouseButtonLeft, 1, 2)
	win.mouseMove(3, 4)
	win.mouseUp(window.MouseButtonLeft, 3, 4)
	win.mouseDown(window.MouseButtonRight, 1, 2)
	win.mouseDown(window.MouseButtonMiddle, 1, 2)
	win.scroll(1)
	assert.Equal(t, []string{"rotate", "move", "end", "pan", "zoom"}, f.orbit.calls)

	win.keyDown(common.KeyW)
	assert.Equal(t, StateWalking, f.app.Controller().Active())
	win.keyUp(common.KeyW)
	assert.Equal(t, StateIdle, f.app.Controller().Active())

	f.app.Close()
	win.keyDown(common.KeyW)
	assert.Equal(t, StateIdle, f.app.Controller().Active(), "input ignored after Close")
}
