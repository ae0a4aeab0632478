// Package animation plays skeletal animation clips. A Mixer owns one Action per clip, advances
// the scheduled actions every frame, cross-fades them by weight and blends their poses over
// the skeleton's rest pose.
package animation

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-robot/engine/model"
)

// Mixer drives every Action of one skeleton.
// Listeners run on the goroutine that calls Update, after the mixer lock is released, so they
// may freely call back into the mixer and its actions.
type Mixer struct {
	mu *sync.Mutex

	skeleton  *model.Skeleton
	time      float32
	timeScale float32

	actions map[string]*Action
	active  []*Action

	listeners      []listener
	nextListenerID ListenerID

	rest []model.Transform
	pose []model.Transform
	acc  *poseAccumulator
}

// NewMixer creates a Mixer for the given skeleton. The initial pose is the rest pose.
//
// Parameters:
//   - skeleton: the bone hierarchy the clips animate (nil gives an empty pose)
//   - options: functional options to configure the mixer
//
// Returns:
//   - *Mixer: the new mixer
func NewMixer(skeleton *model.Skeleton, options ...MixerBuilderOption) *Mixer {
	m := &Mixer{
		mu:        &sync.Mutex{},
		skeleton:  skeleton,
		timeScale: 1,
		actions:   make(map[string]*Action),
	}
	if skeleton != nil {
		m.rest = skeleton.RestPose()
	}
	m.pose = slices.Clone(m.rest)
	m.acc = newPoseAccumulator(len(m.rest))
	for _, option := range options {
		option(m)
	}
	return m
}

// ClipAction returns the Action for clip, creating it on first use.
// Actions are keyed by clip name, so every call for the same clip returns the same Action.
//
// Parameters:
//   - clip: the clip to play
//
// Returns:
//   - *Action: the action bound to this mixer
func (m *Mixer) ClipAction(clip *model.AnimationClip) *Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.actions[clip.Name]; ok {
		return a
	}
	a := newAction(m, clip)
	m.actions[clip.Name] = a
	return a
}

// ExistingAction returns the Action previously created for the named clip.
func (m *Mixer) ExistingAction(name string) (*Action, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.actions[name]
	return a, ok
}

// Time returns the mixer's global time in seconds.
func (m *Mixer) Time() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.time
}

// TimeScale returns the global speed factor.
func (m *Mixer) TimeScale() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeScale
}

// SetTimeScale sets the global speed factor applied to every action.
func (m *Mixer) SetTimeScale(timeScale float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeScale = timeScale
}

// StopAllAction stops and resets every scheduled action.
func (m *Mixer) StopAllAction() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.active {
		a.reset()
	}
	m.active = m.active[:0]
}

// AddListener registers fn for events of the given type.
//
// Parameters:
//   - eventType: EventFinished or EventLoop
//   - fn: the callback
//
// Returns:
//   - ListenerID: handle for RemoveListener
func (m *Mixer) AddListener(eventType EventType, fn func(Event)) ListenerID {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextListenerID++
	m.listeners = append(m.listeners, listener{id: m.nextListenerID, eventType: eventType, fn: fn})
	return m.nextListenerID
}

// RemoveListener unregisters a listener. Unknown ids are ignored.
func (m *Mixer) RemoveListener(id ListenerID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = slices.DeleteFunc(m.listeners, func(l listener) bool { return l.id == id })
}

// ListenerCount returns the number of registered listeners.
func (m *Mixer) ListenerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.listeners)
}

// Update advances mixer time by dt seconds, updates every scheduled action, blends the
// resulting pose and then delivers the events raised during the update.
//
// Parameters:
//   - dt: elapsed seconds since the last update
func (m *Mixer) Update(dt float32) {
	m.mu.Lock()
	dt *= m.timeScale
	m.time += dt
	now := m.time

	var events []Event
	m.acc.reset()
	for _, a := range slices.Clone(m.active) {
		var weight float32
		weight, events = a.update(now, dt, events)
		if weight > 0 {
			m.acc.accumulate(a.clip, a.time, weight)
		}
	}
	m.acc.resolve(m.rest, m.pose)

	var deliver []func()
	for _, e := range events {
		for _, l := range m.listeners {
			if l.eventType == e.Type {
				fn, ev := l.fn, e
				deliver = append(deliver, func() { fn(ev) })
			}
		}
	}
	m.mu.Unlock()

	for _, d := range deliver {
		d()
	}
}

// Pose returns a copy of the pose computed by the last Update, one transform per bone.
func (m *Mixer) Pose() []model.Transform {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.pose)
}

func (m *Mixer) activate(a *Action) {
	if !m.isActive(a) {
		m.active = append(m.active, a)
	}
}

func (m *Mixer) deactivate(a *Action) {
	m.active = slices.DeleteFunc(m.active, func(x *Action) bool { return x == a })
}

func (m *Mixer) isActive(a *Action) bool {
	return slices.Contains(m.active, a)
}
