package animation

import (
	"math"

	"github.com/Carmen-Shannon/oxy-robot/engine/model"
)

// LoopMode controls what an Action does when its time passes the end of the clip.
type LoopMode int

const (
	// LoopRepeat wraps the time back to the start and emits a loop event.
	LoopRepeat LoopMode = iota

	// LoopOnce stops at the end and emits a finished event.
	LoopOnce
)

func (m LoopMode) String() string {
	switch m {
	case LoopOnce:
		return "once"
	default:
		return "repeat"
	}
}

// weightFade linearly moves an action's weight factor between two mixer times.
type weightFade struct {
	startTime, endTime     float32
	startWeight, endWeight float32
}

func (f *weightFade) evaluate(t float32) float32 {
	if t >= f.endTime {
		return f.endWeight
	}
	if t <= f.startTime {
		return f.startWeight
	}
	k := (t - f.startTime) / (f.endTime - f.startTime)
	return f.startWeight + (f.endWeight-f.startWeight)*k
}

// Action is the playback state of one clip on one Mixer.
// Actions are created by Mixer.ClipAction and live as long as the mixer. Setters return the
// action so calls can be chained. Only Mixer.Update advances time and effective weight.
type Action struct {
	mixer *Mixer
	clip  *model.AnimationClip

	time      float32
	timeScale float32
	weight    float32

	loop        LoopMode
	repetitions int
	loopCount   int

	clampWhenFinished bool
	enabled           bool
	paused            bool

	fade *weightFade

	effectiveWeight    float32
	effectiveTimeScale float32
}

func newAction(mixer *Mixer, clip *model.AnimationClip) *Action {
	return &Action{
		mixer:       mixer,
		clip:        clip,
		timeScale:   1,
		weight:      1,
		loop:        LoopRepeat,
		repetitions: math.MaxInt,
		loopCount:   -1,
		enabled:     true,
	}
}

// Clip returns the clip this action plays.
func (a *Action) Clip() *model.AnimationClip {
	return a.clip
}

// Play schedules the action on its mixer. Playing an already scheduled action does nothing.
//
// Returns:
//   - *Action: the action, for chaining
func (a *Action) Play() *Action {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.mixer.activate(a)
	return a
}

// Stop removes the action from its mixer and resets it.
//
// Returns:
//   - *Action: the action, for chaining
func (a *Action) Stop() *Action {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.mixer.deactivate(a)
	a.reset()
	return a
}

// Reset rewinds the action to time zero, enables and unpauses it and cancels any fade.
//
// Returns:
//   - *Action: the action, for chaining
func (a *Action) Reset() *Action {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.reset()
	return a
}

func (a *Action) reset() {
	a.paused = false
	a.enabled = true
	a.time = 0
	a.loopCount = -1
	a.fade = nil
}

// IsRunning reports whether the action is scheduled and its time is advancing.
func (a *Action) IsRunning() bool {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.enabled && !a.paused && a.timeScale != 0 && a.mixer.isActive(a)
}

// IsScheduled reports whether the action is on the mixer's active list.
func (a *Action) IsScheduled() bool {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.mixer.isActive(a)
}

// SetLoop sets the loop mode and, for LoopRepeat, how many times the clip plays in total.
// A non-positive repetition count means repeat forever.
//
// Parameters:
//   - mode: LoopRepeat or LoopOnce
//   - repetitions: total plays before finishing (LoopRepeat only)
//
// Returns:
//   - *Action: the action, for chaining
func (a *Action) SetLoop(mode LoopMode, repetitions int) *Action {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.loop = mode
	if repetitions <= 0 {
		repetitions = math.MaxInt
	}
	a.repetitions = repetitions
	return a
}

// Loop returns the loop mode.
func (a *Action) Loop() LoopMode {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.loop
}

// SetClampWhenFinished controls whether a finished LoopOnce action holds its last frame
// (paused) instead of disabling itself.
func (a *Action) SetClampWhenFinished(clamp bool) *Action {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.clampWhenFinished = clamp
	return a
}

// ClampWhenFinished reports whether the action holds its last frame when finished.
func (a *Action) ClampWhenFinished() bool {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.clampWhenFinished
}

// SetEffectiveWeight sets the base weight and cancels any fade in progress.
//
// Parameters:
//   - weight: the new base weight
//
// Returns:
//   - *Action: the action, for chaining
func (a *Action) SetEffectiveWeight(weight float32) *Action {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.weight = weight
	a.effectiveWeight = 0
	if a.enabled {
		a.effectiveWeight = weight
	}
	a.fade = nil
	return a
}

// EffectiveWeight returns the weight used for blending by the last update, fades included.
func (a *Action) EffectiveWeight() float32 {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.effectiveWeight
}

// SetEffectiveTimeScale sets the playback speed (1 is normal, 0 freezes time).
func (a *Action) SetEffectiveTimeScale(timeScale float32) *Action {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.timeScale = timeScale
	a.effectiveTimeScale = 0
	if !a.paused {
		a.effectiveTimeScale = timeScale
	}
	return a
}

// EffectiveTimeScale returns the time scale used by the last update (0 while paused).
func (a *Action) EffectiveTimeScale() float32 {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.effectiveTimeScale
}

// FadeIn ramps the weight factor from 0 to 1 over duration seconds of mixer time.
func (a *Action) FadeIn(duration float32) *Action {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.scheduleFade(duration, 0, 1)
	return a
}

// FadeOut ramps the weight factor from 1 to 0 over duration seconds of mixer time.
// The action disables itself once the fade completes.
func (a *Action) FadeOut(duration float32) *Action {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.scheduleFade(duration, 1, 0)
	return a
}

func (a *Action) scheduleFade(duration, from, to float32) {
	now := a.mixer.time
	a.fade = &weightFade{
		startTime:   now,
		endTime:     now + max(0, duration),
		startWeight: from,
		endWeight:   to,
	}
}

// Time returns the local clip time in seconds.
func (a *Action) Time() float32 {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.time
}

// SetTime jumps to a local clip time.
func (a *Action) SetTime(t float32) *Action {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.time = t
	return a
}

// Enabled reports whether the action contributes to the pose.
func (a *Action) Enabled() bool {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.enabled
}

// SetEnabled toggles whether the action contributes to the pose.
func (a *Action) SetEnabled(enabled bool) *Action {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.enabled = enabled
	return a
}

// Paused reports whether the action's time is frozen.
func (a *Action) Paused() bool {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	return a.paused
}

// SetPaused freezes or resumes the action's time.
func (a *Action) SetPaused(paused bool) *Action {
	a.mixer.mu.Lock()
	defer a.mixer.mu.Unlock()
	a.paused = paused
	return a
}

// update advances the action to mixer time now and returns the weight it blends with.
// Events raised on the way are appended to events. Caller must hold the mixer mutex.
func (a *Action) update(now, dt float32, events []Event) (float32, []Event) {
	if !a.enabled {
		return a.updateWeight(now), events
	}

	a.effectiveTimeScale = 0
	if !a.paused {
		a.effectiveTimeScale = a.timeScale
	}
	events = a.updateTime(dt*a.effectiveTimeScale, events)
	return a.updateWeight(now), events
}

func (a *Action) updateWeight(now float32) float32 {
	var weight float32
	if a.enabled {
		weight = a.weight
		if f := a.fade; f != nil {
			factor := f.evaluate(now)
			weight *= factor
			if now >= f.endTime {
				a.fade = nil
				if factor == 0 {
					a.enabled = false
				}
			}
		}
	}
	a.effectiveWeight = weight
	return weight
}

func (a *Action) updateTime(dt float32, events []Event) []Event {
	duration := a.clip.Duration
	t := a.time + dt

	if dt == 0 {
		return events
	}

	if a.loop == LoopOnce {
		if a.loopCount == -1 {
			a.loopCount = 0
		}
		switch {
		case t >= duration:
			t = duration
		case t < 0:
			t = 0
		default:
			a.time = t
			return events
		}
		if a.clampWhenFinished {
			a.paused = true
		} else {
			a.enabled = false
		}
		a.time = t
		return append(events, Event{Type: EventFinished, Action: a, Direction: direction(dt)})
	}

	if a.loopCount == -1 {
		a.loopCount = 0
	}
	if duration <= 0 {
		a.time = 0
		return events
	}
	if t >= duration || t < 0 {
		loopDelta := int(math.Floor(float64(t / duration)))
		t -= duration * float32(loopDelta)
		a.loopCount += absInt(loopDelta)

		if a.repetitions != math.MaxInt && a.loopCount >= a.repetitions {
			if a.clampWhenFinished {
				a.paused = true
			} else {
				a.enabled = false
			}
			if dt > 0 {
				t = duration
			} else {
				t = 0
			}
			a.time = t
			return append(events, Event{Type: EventFinished, Action: a, Direction: direction(dt)})
		}
		a.time = t
		return append(events, Event{Type: EventLoop, Action: a, LoopDelta: loopDelta})
	}
	a.time = t
	return events
}

func direction(dt float32) int {
	if dt < 0 {
		return -1
	}
	return 1
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
