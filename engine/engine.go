package engine

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-robot/engine/profiler"
	"github.com/Carmen-Shannon/oxy-robot/engine/scene"
	"github.com/Carmen-Shannon/oxy-robot/engine/window"
)

// engine is the implementation of the Engine interface.
type engine struct {
	mu *sync.Mutex

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	now       func() time.Time
	lastFrame time.Time
	started   bool

	frameCallback func(deltaTime float32)

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine drives a cooperative single-threaded frame loop on the window's message loop:
// poll events, measure the frame delta, run the frame callback, draw the active scenes and
// present. There is no fixed timestep and no frame skipping.
type Engine interface {
	// Window returns the window the engine runs on.
	//
	// Returns:
	//   - window.Window: the engine's window
	Window() window.Window

	// EnableProfiler turns on periodic frame statistics logging.
	EnableProfiler()

	// DisableProfiler turns off frame statistics logging.
	DisableProfiler()

	// SetFrameCallback sets the function called once per frame, before drawing.
	//
	// Parameters:
	//   - callback: receives the seconds elapsed since the previous frame (0 on the first)
	SetFrameCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit caps the frame rate by sleeping out the rest of each frame.
	//
	// Parameters:
	//   - fps: maximum frames per second (0 or negative = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene under key. Active scenes are drawn in ascending key order.
	//
	// Parameters:
	//   - key: ordering key
	//   - s: the scene
	AddScene(key int, s scene.Scene)

	// RemoveScene unregisters the scene under key.
	RemoveScene(key int)

	// Scene returns the scene under key, or nil.
	Scene(key int) scene.Scene

	// Scenes returns a copy of the scene map.
	Scenes() map[int]scene.Scene

	// Step runs one frame. Run calls it from the window message loop.
	Step()

	// Run installs Step as the window update callback and blocks in the message loop
	// until the window closes.
	Run()

	// Quit closes the window, which ends Run after the current frame.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine with the given options. When a window is supplied its
// resize callback is wired to every scene's renderer and camera aspect.
//
// Parameters:
//   - options: functional options to configure the engine
//
// Returns:
//   - Engine: the new engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:     &sync.Mutex{},
		scenes: make(map[int]scene.Scene),
		now:    time.Now,
	}

	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderFrameLimit = frameLimit(fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[int]scene.Scene, len(e.scenes))
	for k, s := range e.scenes {
		out[k] = s
	}
	return out
}

func (e *engine) Run() {
	if e.window == nil {
		log.Printf("[Engine] Run called without a window")
		return
	}
	e.window.SetUpdateCallback(e.Step)
	e.window.ProcessMessages()
}

func (e *engine) Quit() {
	if e.window == nil {
		return
	}
	if err := e.window.Close(); err != nil {
		log.Printf("[Engine] failed to close window: %v", err)
	}
}

func (e *engine) Step() {
	e.mu.Lock()
	now := e.now()
	var dt float32
	if e.started {
		dt = float32(now.Sub(e.lastFrame).Seconds())
	}
	e.started = true
	e.lastFrame = now
	callback := e.frameCallback
	active := e.activeScenes()
	profiling := e.profilingEnabled
	limit := e.renderFrameLimit
	e.mu.Unlock()

	if callback != nil {
		callback(dt)
	}

	e.draw(active)

	if profiling {
		e.profiler.Tick()
	}

	if limit > 0 {
		if remaining := limit - e.now().Sub(now); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// activeScenes returns the active scenes in key order. Caller must hold the mutex.
func (e *engine) activeScenes() []scene.Scene {
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var active []scene.Scene
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	return active
}

// draw renders every active scene into one frame on the first scene's renderer.
// A frame whose surface cannot be acquired is skipped.
func (e *engine) draw(active []scene.Scene) {
	if len(active) == 0 {
		return
	}
	r := active[0].Renderer()
	if r == nil {
		return
	}
	if err := r.BeginFrame(); err != nil {
		log.Printf("[Engine] frame skipped: %v", err)
		return
	}
	for _, s := range active {
		if _, err := s.Draw(); err != nil {
			log.Printf("[Engine] scene %q: %v", s.Name(), err)
		}
	}
	r.EndFrame()
	r.Present()
}

func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	for _, s := range e.Scenes() {
		if r := s.Renderer(); r != nil {
			r.Resize(width, height)
		}
		if c := s.Camera(); c != nil {
			c.SetAspect(float32(width) / float32(height))
		}
	}
}

func frameLimit(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
