package game

import (
	"reflect"
	"testing"

	"github.com/Carmen-Shannon/oxy-robot/engine/animation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerLoopModesFollowStateTable(t *testing.T) {
	names := append(append([]string{"Custom"}, StateNames...), EmoteNames...)
	c := NewAnimationController(testRobot(names...))

	for _, name := range names {
		a := c.Action(name)
		require.NotNil(t, a, name)
		if IsOneShot(name) {
			assert.Equal(t, animation.LoopOnce, a.Loop(), name)
			assert.True(t, a.ClampWhenFinished(), name)
		} else {
			assert.Equal(t, animation.LoopRepeat, a.Loop(), name)
			assert.False(t, a.ClampWhenFinished(), name)
		}
	}
}

func TestControllerStartsIdle(t *testing.T) {
	c := NewAnimationController(testRobot("Idle", "Walking", "Jump"))

	require.True(t, c.Loaded())
	assert.Equal(t, StateIdle, c.Active())
	assert.Empty(t, c.Previous())
	assert.Equal(t, StateWalking, c.Resting())

	idle := c.Action("Idle")
	assert.True(t, idle.IsRunning())
	assert.Equal(t, float32(1), idle.EffectiveWeight())

	c.Update(0.1)
	assert.Equal(t, float32(1), idle.EffectiveWeight(), "no fade-in on the initial state")
	assert.False(t, c.Action("Walking").IsScheduled())
	assert.False(t, c.Action("Jump").IsScheduled())
}

func TestControllerTransitionToActiveIsNoOp(t *testing.T) {
	c := NewAnimationController(testRobot("Idle", "Walking"))
	walking := c.Action("Walking")

	c.TransitionTo(StateWalking, 0.2)
	c.Update(0.05)
	assert.InDelta(t, 0.25, walking.EffectiveWeight(), 1e-5)

	c.TransitionTo(StateWalking, 0.2)
	assert.Equal(t, StateWalking, c.Active())
	assert.Equal(t, StateIdle, c.Previous())

	c.Update(0.05)
	assert.InDelta(t, 0.1, walking.Time(), 1e-5, "time was not reset")
	assert.InDelta(t, 0.5, walking.EffectiveWeight(), 1e-5, "fade was not restarted")
}

func TestControllerCrossFadeMidpoint(t *testing.T) {
	c := NewAnimationController(testRobot("Idle", "Walking", "Running"))

	c.TransitionTo(StateWalking, 1)
	c.TransitionTo("Running", 1)
	assert.Equal(t, "Running", c.Active())
	assert.Equal(t, StateWalking, c.Previous())

	c.Update(0.5)
	walking, running := c.Action("Walking"), c.Action("Running")
	assert.Greater(t, walking.EffectiveWeight(), float32(0))
	assert.InDelta(t, 0.5, running.EffectiveWeight(), 1e-5)

	c.Update(0.25)
	assert.InDelta(t, 0.75, running.EffectiveWeight(), 1e-5)

	c.Update(0.25)
	assert.InDelta(t, 1, running.EffectiveWeight(), 1e-5)
	assert.Zero(t, walking.EffectiveWeight())
	assert.False(t, walking.Enabled())
}

func TestControllerZeroFadeCutsImmediately(t *testing.T) {
	c := NewAnimationController(testRobot("Idle", "Walking"))

	c.TransitionTo(StateWalking, 0)
	c.Update(0.01)

	assert.Zero(t, c.Action("Idle").EffectiveWeight())
	assert.Equal(t, float32(1), c.Action("Walking").EffectiveWeight())
}

func TestControllerIgnoresUnknownClip(t *testing.T) {
	c := NewAnimationController(testRobot("Idle", "Walking"))

	c.TransitionTo("Fly", 0.2)
	c.TriggerOneShot("Fly")

	assert.Equal(t, StateIdle, c.Active())
	assert.Empty(t, c.Previous())
	assert.Zero(t, c.Mixer().ListenerCount())
}

func TestControllerOneShotRestoresResting(t *testing.T) {
	c := NewAnimationController(testRobot("Idle", "Walking", "Wave"))

	c.Emotes()["Wave"]()
	assert.Equal(t, "Wave", c.Active())
	assert.Equal(t, 1, c.Mixer().ListenerCount())

	c.Update(0.5)
	assert.Equal(t, "Wave", c.Active())

	c.Update(0.6)
	assert.Equal(t, StateWalking, c.Active())
	assert.Equal(t, "Wave", c.Previous())
	assert.Zero(t, c.Mixer().ListenerCount(), "subscription removed after firing")
	assert.True(t, c.Action("Wave").Paused(), "clamped on the last frame")

	c.TransitionTo(StateIdle, 0)
	c.Update(2)
	assert.Equal(t, StateIdle, c.Active(), "restore fires once")
}

func TestControllerOneShotUsesCurrentResting(t *testing.T) {
	c := NewAnimationController(testRobot("Idle", "Walking", "Dance", "Jump"), WithRestingState("Dance"))
	assert.Equal(t, "Dance", c.Resting())

	c.TriggerOneShot("Jump")
	c.SetResting(StateIdle)
	c.Update(1.5)

	assert.Equal(t, StateIdle, c.Active())
}

func TestControllerOneShotReplacesPendingSubscription(t *testing.T) {
	c := NewAnimationController(testRobot("Idle", "Walking", "Wave", "Jump"))

	c.TriggerOneShot("Wave")
	c.Update(0.5)
	c.TriggerOneShot("Jump")
	assert.Equal(t, 1, c.Mixer().ListenerCount())
	assert.Equal(t, "Jump", c.Active())

	c.Update(1.1)
	assert.Equal(t, StateWalking, c.Active())
	assert.Zero(t, c.Mixer().ListenerCount())
}

func TestControllerOneShotInterruptedDoesNotRestore(t *testing.T) {
	c := NewAnimationController(testRobot("Idle", "Walking", "Wave"))

	c.TriggerOneShot("Wave")
	c.Update(0.9)
	c.TransitionTo(StateIdle, 0.2)
	c.Update(0.15)

	assert.Equal(t, StateIdle, c.Active())
	assert.Zero(t, c.Mixer().ListenerCount())
}

func TestControllerEmotesBuiltOnce(t *testing.T) {
	c := NewAnimationController(testRobot("Idle", "Wave"))

	first, second := c.Emotes(), c.Emotes()
	assert.Len(t, first, len(EmoteNames))
	assert.Equal(t, reflect.ValueOf(first).Pointer(), reflect.ValueOf(second).Pointer())
	for _, name := range EmoteNames {
		assert.Contains(t, first, name)
	}
}

func TestUnloadedControllerIsNoOp(t *testing.T) {
	for name, c := range map[string]AnimationController{
		"no model":    NewAnimationController(nil),
		"nil pointer": (*animationController)(nil),
	} {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				c.TransitionTo(StateWalking, 0.2)
				c.TriggerOneShot("Wave")
				c.Update(0.1)
				c.SetResting(StateIdle)
			})
			assert.False(t, c.Loaded())
			assert.Empty(t, c.Active())
			assert.Nil(t, c.Pose())
			assert.Nil(t, c.Mixer())
			assert.Nil(t, c.Action("Idle"))
			assert.Empty(t, c.Emotes())
		})
	}
}

func TestControllerPoseFollowsMixer(t *testing.T) {
	c := NewAnimationController(testRobot("Idle"))

	c.Update(0.5)

	pose := c.Pose()
	require.Len(t, pose, 1)
	assert.InDelta(t, 0.5, pose[0].Translation[1], 1e-5)
}
