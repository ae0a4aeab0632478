// Package game holds the robot scene: the animation state controller, keyboard input, the
// static world and the App that ties them to the engine's frame loop.
package game

import (
	"log"

	"github.com/Carmen-Shannon/oxy-robot/engine/animation"
	"github.com/Carmen-Shannon/oxy-robot/engine/model"
)

// animationController is the implementation of the AnimationController interface.
// It is driven from the frame loop goroutine only and is not safe for concurrent use.
type animationController struct {
	mixer   *animation.Mixer
	actions map[string]*animation.Action

	active   *animation.Action
	previous *animation.Action
	resting  string

	// pending is the one-shot completion listener, 0 when none is installed.
	pending animation.ListenerID

	emotes      map[string]func()
	mixerOpts   []animation.MixerBuilderOption
	initialized bool
}

// AnimationController cross-fades between the named clips of one model.
// A controller built without a model is unloaded: every operation on it does nothing.
type AnimationController interface {
	// TransitionTo cross-fades from the active clip to name over fade seconds.
	// Unknown names and the already active clip are ignored.
	//
	// Parameters:
	//   - name: the clip to play
	//   - fade: cross-fade duration in seconds
	TransitionTo(name string, fade float32)

	// TriggerOneShot transitions to name and, when that clip finishes, back to the resting
	// state. A later call replaces the pending return of an earlier one.
	//
	// Parameters:
	//   - name: the one-shot clip to play
	TriggerOneShot(name string)

	// Emotes returns one trigger per emote name. The map is built once; callers must not
	// modify it.
	Emotes() map[string]func()

	// Update advances the mixer by dt seconds, delivering finished events.
	Update(dt float32)

	// Pose returns the blended skeleton pose of the last Update.
	Pose() []model.Transform

	// Loaded reports whether the controller is bound to a model.
	Loaded() bool

	// Active returns the name of the clip being faded in or played, or "".
	Active() string

	// Previous returns the name of the clip being faded out, or "".
	Previous() string

	// Resting returns the state a finished one-shot returns to.
	Resting() string

	// SetResting changes the state a finished one-shot returns to.
	SetResting(name string)

	// Action returns the playback handle for a clip, or nil.
	Action(name string) *animation.Action

	// Mixer returns the underlying mixer, or nil when unloaded.
	Mixer() *animation.Mixer
}

var _ AnimationController = &animationController{}

// NewAnimationController binds a mixer to m, creates one action per clip with the loop mode of
// the state table and starts Idle without a fade. A nil model yields an unloaded controller.
//
// Parameters:
//   - m: the loaded model (may be nil)
//   - options: functional options to configure the controller
//
// Returns:
//   - AnimationController: the new controller
func NewAnimationController(m model.Model, options ...AnimationControllerBuilderOption) AnimationController {
	c := &animationController{
		actions: make(map[string]*animation.Action),
		resting: StateWalking,
	}
	for _, option := range options {
		option(c)
	}
	if m == nil {
		return c
	}

	c.mixer = animation.NewMixer(m.Skeleton(), c.mixerOpts...)
	for _, clip := range m.Animations() {
		action := c.mixer.ClipAction(clip)
		if IsOneShot(clip.Name) {
			action.SetLoop(animation.LoopOnce, 0).SetClampWhenFinished(true)
		} else {
			action.SetLoop(animation.LoopRepeat, 0).SetClampWhenFinished(false)
		}
		c.actions[clip.Name] = action
	}

	c.emotes = make(map[string]func(), len(EmoteNames))
	for _, name := range EmoteNames {
		c.emotes[name] = func() { c.TriggerOneShot(name) }
	}

	c.initialized = true
	c.TransitionTo(StateIdle, 0)
	return c
}

func (c *animationController) TransitionTo(name string, fade float32) {
	if !c.Loaded() {
		return
	}
	next, ok := c.actions[name]
	if !ok {
		log.Printf("[Animation] no clip named %q, staying in %q", name, c.Active())
		return
	}
	if next == c.active {
		return
	}

	c.previous = c.active
	c.active = next
	if c.previous != nil {
		c.previous.FadeOut(fade)
	}
	next.Reset().
		SetEffectiveTimeScale(1).
		SetEffectiveWeight(1).
		FadeIn(fade).
		Play()
}

func (c *animationController) TriggerOneShot(name string) {
	if !c.Loaded() {
		return
	}
	action, ok := c.actions[name]
	if !ok {
		log.Printf("[Animation] no emote clip named %q", name)
		return
	}

	c.cancelPending()
	c.TransitionTo(name, TransitionFade)
	c.pending = c.mixer.AddListener(animation.EventFinished, func(e animation.Event) {
		if e.Action != action {
			return
		}
		c.cancelPending()
		if c.active == action {
			c.TransitionTo(c.resting, TransitionFade)
		}
	})
}

// cancelPending removes the one-shot completion listener, if any.
func (c *animationController) cancelPending() {
	if c.pending != 0 {
		c.mixer.RemoveListener(c.pending)
		c.pending = 0
	}
}

func (c *animationController) Emotes() map[string]func() {
	if c == nil {
		return nil
	}
	return c.emotes
}

func (c *animationController) Update(dt float32) {
	if !c.Loaded() {
		return
	}
	c.mixer.Update(dt)
}

func (c *animationController) Pose() []model.Transform {
	if !c.Loaded() {
		return nil
	}
	return c.mixer.Pose()
}

func (c *animationController) Loaded() bool {
	return c != nil && c.initialized
}

func (c *animationController) Active() string {
	if c == nil {
		return ""
	}
	return actionName(c.active)
}

func (c *animationController) Previous() string {
	if c == nil {
		return ""
	}
	return actionName(c.previous)
}

func (c *animationController) Resting() string {
	if c == nil {
		return ""
	}
	return c.resting
}

func (c *animationController) SetResting(name string) {
	if c == nil {
		return
	}
	c.resting = name
}

func (c *animationController) Action(name string) *animation.Action {
	if c == nil {
		return nil
	}
	return c.actions[name]
}

func (c *animationController) Mixer() *animation.Mixer {
	if c == nil {
		return nil
	}
	return c.mixer
}

func actionName(a *animation.Action) string {
	if a == nil {
		return ""
	}
	return a.Clip().Name
}
