package main

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-robot/engine"
	"github.com/Carmen-Shannon/oxy-robot/engine/loader"
	"github.com/Carmen-Shannon/oxy-robot/engine/renderer"
	"github.com/Carmen-Shannon/oxy-robot/engine/window"
	"github.com/Carmen-Shannon/oxy-robot/game"
)

const sceneKey = 0

func run(opts runOptions) error {
	msaa, err := msaaSampleCount(opts.msaa)
	if err != nil {
		return err
	}
	present := renderer.PresentModeUncapped
	if opts.vsync {
		present = renderer.PresentModeVSync
	}

	eng := engine.NewEngine(
		engine.WithProfiling(opts.profile),
		engine.WithWindow(window.NewWindow(
			window.WithTitle(opts.title),
			window.WithWidth(opts.width),
			window.WithHeight(opts.height),
		)),
	)
	win := eng.Window()

	r := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(present),
		renderer.WithMSAA(msaa),
	)

	world, err := game.BuildWorld(r,
		game.WithAspect(float32(win.Width())/float32(max(win.Height(), 1))),
		game.WithStars(opts.stars),
		game.WithSeed(opts.seed),
		game.WithGroundNormalMap(opts.groundNormal),
		game.WithOrbitDamping(opts.orbitDamping),
	)
	if err != nil {
		return fmt.Errorf("failed to build the scene: %w", err)
	}
	defer world.Scene.Release()

	ldr := loader.NewLoader(loader.BackendTypeGLTF)
	app := game.NewApp(world.Scene, world.Orbit, ldr.LoadAsync(opts.model),
		game.WithInputHandler(game.NewInputHandler(game.WithEmoteKeys(opts.emoteKeys))),
		game.WithControllerOptions(game.WithRestingState(opts.resting)),
	)
	defer app.Close()
	app.Bind(win)

	eng.AddScene(sceneKey, world.Scene)
	eng.SetFrameCallback(app.Frame)

	log.Printf("[Game] loading %s", opts.model)
	eng.Run()
	return nil
}

func msaaSampleCount(samples int) (renderer.MSAASampleCount, error) {
	switch samples {
	case 1:
		return renderer.MSAAOff, nil
	case 4:
		return renderer.MSAA4x, nil
	default:
		return 0, fmt.Errorf("unsupported MSAA sample count %d (use 1 or 4)", samples)
	}
}
