package game

import (
	"log"

	"github.com/Carmen-Shannon/oxy-robot/engine/camera"
	"github.com/Carmen-Shannon/oxy-robot/engine/game_object"
	"github.com/Carmen-Shannon/oxy-robot/engine/loader"
	"github.com/Carmen-Shannon/oxy-robot/engine/model"
	"github.com/Carmen-Shannon/oxy-robot/engine/scene"
	"github.com/Carmen-Shannon/oxy-robot/engine/window"
)

// PendingModel is a model load polled once per frame. *loader.Future implements it.
type PendingModel interface {
	// Path returns the file being loaded.
	Path() string

	// Poll returns the load result and true once the load has finished.
	Poll() (loader.Result, bool)
}

var _ PendingModel = &loader.Future{}

// app is the implementation of the App interface.
type app struct {
	scene scene.Scene
	orbit camera.OrbitController
	input InputHandler

	load          PendingModel
	newController func(model.Model) AnimationController
	controllerOps []AnimationControllerBuilderOption

	controller AnimationController
	player     game_object.GameObject
	closed     bool
}

// App runs the robot scene on top of the engine frame loop. It adds the player once the model
// load resolves, feeds the animation controller and the orbit camera every frame and routes
// window input to the InputHandler and the camera.
type App interface {
	// Frame is the engine frame callback.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	Frame(dt float32)

	// Bind installs the key, mouse and scroll callbacks on win.
	Bind(win window.Window)

	// Close stops the app from applying further frames or a late load result.
	Close()

	// Controller returns the animation controller (unloaded until the model arrives).
	Controller() AnimationController

	// Player returns the player object, or nil before the model arrives.
	Player() game_object.GameObject

	// Input returns the input handler.
	Input() InputHandler
}

var _ App = &app{}

// NewApp creates an App drawing into sc and steering orbit. The player appears when load
// resolves successfully; a failed load is logged and the scene keeps running without it.
//
// Parameters:
//   - sc: the scene the player is added to (its camera is updated every frame)
//   - orbit: the orbit controller driving the scene camera
//   - load: the pending model load (nil for a scene without a player)
//   - options: functional options to configure the app
//
// Returns:
//   - App: the new app
func NewApp(sc scene.Scene, orbit camera.OrbitController, load PendingModel, options ...AppBuilderOption) App {
	a := &app{
		scene: sc,
		orbit: orbit,
		load:  load,
	}
	for _, option := range options {
		option(a)
	}
	if a.input == nil {
		a.input = NewInputHandler()
	}
	if a.newController == nil {
		a.newController = func(m model.Model) AnimationController {
			return NewAnimationController(m, a.controllerOps...)
		}
	}
	a.controller = NewAnimationController(nil)
	return a
}

func (a *app) Frame(dt float32) {
	if a.closed {
		return
	}
	a.resolveLoad()

	if a.controller.Loaded() {
		a.controller.Update(dt)
		if a.player != nil {
			a.player.ApplyPose(a.controller.Pose())
		}
	}
	if a.orbit != nil {
		a.orbit.Update(dt)
	}
	if a.scene != nil && a.scene.Camera() != nil {
		a.scene.Camera().Update()
	}
}

// resolveLoad consumes the load result the first frame it is available.
func (a *app) resolveLoad() {
	if a.load == nil {
		return
	}
	res, ok := a.load.Poll()
	if !ok {
		return
	}
	path := a.load.Path()
	a.load = nil

	if res.Err != nil {
		log.Printf("[Game] failed to load %s: %v", path, res.Err)
		return
	}

	player := game_object.NewGameObject(
		game_object.WithName(res.Model.Name()),
		game_object.WithModel(res.Model),
	)
	if _, err := a.scene.Add(player); err != nil {
		log.Printf("[Game] failed to add %s to the scene: %v", path, err)
		return
	}

	a.player = player
	a.controller = a.newController(res.Model)
	a.input.SetPlayer(player)
	a.input.SetController(a.controller)
	log.Printf("[Game] %s ready, clips: %v", res.Model.Name(), res.Model.AnimationNames())
}

func (a *app) Bind(win window.Window) {
	win.SetKeyDownCallback(func(keyCode uint32) {
		if !a.closed {
			a.input.KeyDown(keyCode)
		}
	})
	win.SetKeyUpCallback(func(keyCode uint32) {
		if !a.closed {
			a.input.KeyUp(keyCode)
		}
	})
	if a.orbit == nil {
		return
	}
	win.SetMouseDownCallback(func(button window.MouseButton, x, y int32) {
		switch button {
		case window.MouseButtonLeft:
			a.orbit.BeginRotate(x, y)
		case window.MouseButtonRight:
			a.orbit.BeginPan(x, y)
		}
	})
	win.SetMouseUpCallback(func(window.MouseButton, int32, int32) {
		a.orbit.EndDrag()
	})
	win.SetMouseMoveCallback(a.orbit.MouseMove)
	win.SetScrollCallback(a.orbit.Zoom)
}

func (a *app) Close() {
	a.closed = true
	a.load = nil
}

func (a *app) Controller() AnimationController {
	return a.controller
}

func (a *app) Player() game_object.GameObject {
	return a.player
}

func (a *app) Input() InputHandler {
	return a.input
}
