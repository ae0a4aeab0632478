package game

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-robot/common"
	"github.com/Carmen-Shannon/oxy-robot/engine/game_object"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

type transition struct {
	name string
	fade float32
}

// recordingController records state requests instead of playing clips.
type recordingController struct {
	AnimationController
	transitions []transition
	emotes      map[string]func()
}

func (r *recordingController) TransitionTo(name string, fade float32) {
	r.transitions = append(r.transitions, transition{name: name, fade: fade})
}

func (r *recordingController) Emotes() map[string]func() {
	return r.emotes
}

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d of %v", i, got)
	}
}

func TestInputMoveKeys(t *testing.T) {
	tests := []struct {
		key      uint32
		position mgl32.Vec3
		yaw      float32
	}{
		{common.KeyW, mgl32.Vec3{0, 0, 0.27}, 0},
		{common.KeyS, mgl32.Vec3{0, 0, -0.27}, 60},
		{common.KeyA, mgl32.Vec3{-0.27, 0, 0}, 30},
		{common.KeyD, mgl32.Vec3{0.27, 0, 0}, 20},
	}
	for _, tt := range tests {
		t.Run(common.KeyName(tt.key), func(t *testing.T) {
			ctrl := &recordingController{}
			player := game_object.NewGameObject()
			h := NewInputHandler(WithController(ctrl), WithPlayer(player))

			h.KeyDown(tt.key)

			assertVec3(t, tt.position, player.Position())
			assert.Equal(t, tt.yaw, player.Rotation()[1])
			assert.Equal(t, []transition{{StateWalking, 0.2}}, ctrl.transitions)
		})
	}
}

func TestInputKeyUpRequestsIdle(t *testing.T) {
	ctrl := &recordingController{}
	h := NewInputHandler(WithController(ctrl), WithPlayer(game_object.NewGameObject()))

	h.KeyDown(common.KeyW)
	h.KeyUp(common.KeyW)
	h.KeyUp(common.KeySpace)

	assert.Equal(t, []transition{
		{StateWalking, TransitionFade},
		{StateIdle, DefaultFade},
		{StateIdle, DefaultFade},
	}, ctrl.transitions)
}

func TestInputRepeatedKeyKeepsApproaching(t *testing.T) {
	player := game_object.NewGameObject(game_object.WithPosition(mgl32.Vec3{1, 0, 1}))
	h := NewInputHandler(WithController(&recordingController{}), WithPlayer(player))

	h.KeyDown(common.KeyW)
	h.KeyDown('w')

	assertVec3(t, mgl32.Vec3{1, 0, 1.54}, player.Position())
}

func TestInputOtherKeyRequestsIdle(t *testing.T) {
	ctrl := &recordingController{}
	player := game_object.NewGameObject()
	h := NewInputHandler(WithController(ctrl), WithPlayer(player))

	h.KeyDown(common.KeySpace)
	h.KeyDown(common.Key1)

	assertVec3(t, mgl32.Vec3{}, player.Position())
	assert.Equal(t, []transition{{StateIdle, 0.2}, {StateIdle, 0.2}}, ctrl.transitions)
}

func TestInputWithoutPlayerStillRequestsStates(t *testing.T) {
	ctrl := &recordingController{}
	h := NewInputHandler(WithController(ctrl))

	assert.NotPanics(t, func() { h.KeyDown(common.KeyD) })
	assert.Equal(t, []transition{{StateWalking, 0.2}}, ctrl.transitions)
}

func TestInputWithoutControllerIsSafe(t *testing.T) {
	player := game_object.NewGameObject()
	h := NewInputHandler(WithPlayer(player), WithEmoteKeys(true))

	assert.NotPanics(t, func() {
		h.KeyDown(common.KeyW)
		h.KeyDown(common.Key4)
		h.KeyUp(common.KeyW)
	})
	assertVec3(t, mgl32.Vec3{0, 0, 0.27}, player.Position())
}

func TestInputEmoteKeys(t *testing.T) {
	var fired []string
	ctrl := &recordingController{emotes: map[string]func(){}}
	for _, name := range EmoteNames {
		ctrl.emotes[name] = func() { fired = append(fired, name) }
	}
	h := NewInputHandler(WithController(ctrl), WithEmoteKeys(true))

	h.KeyDown(common.Key4)
	h.KeyUp(common.Key4)
	h.KeyDown(common.Key1)

	assert.Equal(t, []string{"Wave", "Jump"}, fired)
	assert.Empty(t, ctrl.transitions)
}

func TestInputSmoothingAndStepOptions(t *testing.T) {
	player := game_object.NewGameObject()
	h := NewInputHandler(
		WithController(&recordingController{}),
		WithPlayer(player),
		WithStepDistance(10),
		WithSmoothing(0.5),
	)

	h.KeyDown(common.KeyA)

	assertVec3(t, mgl32.Vec3{-5, 0, 0}, player.Position())
}

func TestInputDrivesRealController(t *testing.T) {
	c := NewAnimationController(testRobot("Idle", "Walking"))
	h := NewInputHandler()
	h.SetController(c)
	h.SetPlayer(game_object.NewGameObject())

	h.KeyDown(common.KeyW)
	assert.Equal(t, StateWalking, c.Active())

	h.KeyUp(common.KeyW)
	assert.Equal(t, StateIdle, c.Active())
	assert.Equal(t, StateWalking, c.Previous())
}
