package game

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-robot/common"
	"github.com/Carmen-Shannon/oxy-robot/engine/camera"
	"github.com/Carmen-Shannon/oxy-robot/engine/game_object"
	"github.com/Carmen-Shannon/oxy-robot/engine/geometry"
	"github.com/Carmen-Shannon/oxy-robot/engine/light"
	"github.com/Carmen-Shannon/oxy-robot/engine/model"
	"github.com/Carmen-Shannon/oxy-robot/engine/renderer"
	"github.com/Carmen-Shannon/oxy-robot/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-robot/engine/scene"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	groundSize    = 150
	gridDivisions = 150
	starRadius    = 0.25
	starSegments  = 24
	starSpread    = 50

	cameraFovDegrees = 75
	cameraNear       = 0.1
	cameraFar        = 1000
)

var (
	cameraStart = mgl32.Vec3{10, 10, 30}
	lightStart  = [3]float32{5, 5, 5}

	// groundColor keeps the packed 0x3131318a; HexColor reads its low three bytes.
	groundColor = common.HexColor(0x3131318a)

	worldFog = scene.Fog{Color: common.HexColor(0xe0e0e0), Near: 20, Far: 100}
)

// World is the robot scene's static content plus its camera rig.
type World struct {
	Scene  scene.Scene
	Camera camera.Camera
	Orbit  camera.OrbitController
	Lights []light.Light

	Ground game_object.GameObject
	Grid   game_object.GameObject
	Stars  []game_object.GameObject
}

// worldConfig collects the WorldBuilderOption values.
type worldConfig struct {
	name         string
	aspect       float32
	starCount    int
	seed         uint64
	normalMap    string
	orbitDamping float64
}

// BuildWorld creates the scene: fog, lights, an orbiting camera, the ground slab, the grid and
// the stars. Every object is uploaded through r before BuildWorld returns.
//
// Parameters:
//   - r: the renderer the scene draws with
//   - options: functional options to configure the world
//
// Returns:
//   - *World: the populated world
//   - error: error if an object fails to upload
func BuildWorld(r renderer.Renderer, options ...WorldBuilderOption) (*World, error) {
	w := newWorld(options...)
	cfg := newWorldConfig(options...)

	w.Scene = scene.NewScene(cfg.name, w.Camera, r,
		scene.WithActive(true),
		scene.WithFog(worldFog),
		scene.WithLights(w.Lights...),
	)
	for _, obj := range w.Objects() {
		if _, err := w.Scene.Add(obj); err != nil {
			return nil, fmt.Errorf("failed to add %q to the scene: %w", obj.Name(), err)
		}
	}
	return w, nil
}

// Objects returns the ground, the grid and the stars, in draw order.
func (w *World) Objects() []game_object.GameObject {
	objs := make([]game_object.GameObject, 0, len(w.Stars)+2)
	objs = append(objs, w.Ground, w.Grid)
	return append(objs, w.Stars...)
}

func newWorldConfig(options ...WorldBuilderOption) worldConfig {
	cfg := worldConfig{
		name:         "robot",
		aspect:       16.0 / 9.0,
		starCount:    200,
		seed:         1,
		orbitDamping: 8,
	}
	for _, option := range options {
		option(&cfg)
	}
	return cfg
}

// newWorld builds everything but the scene, so it needs no GPU.
func newWorld(options ...WorldBuilderOption) *World {
	cfg := newWorldConfig(options...)

	orbit := camera.NewOrbitController(
		camera.WithOrbitTarget(mgl32.Vec3{}),
		camera.WithOrbitPosition(cameraStart),
		camera.WithDamping(cfg.orbitDamping),
	)
	cam := camera.NewCamera(
		camera.WithFov(mgl32.DegToRad(cameraFovDegrees)),
		camera.WithAspect(cfg.aspect),
		camera.WithClipPlanes(cameraNear, cameraFar),
		camera.WithPosition(cameraStart),
		camera.WithController(orbit),
	)

	return &World{
		Camera: cam,
		Orbit:  orbit,
		Lights: []light.Light{
			light.NewLight(light.LightTypeAmbient, light.WithHexColor(0xffffff), light.WithIntensity(1)),
			light.NewLight(light.LightTypePoint, light.WithHexColor(0xffffff), light.WithIntensity(1), light.WithPosition(lightStart)),
		},
		Ground: newGround(cfg.normalMap),
		Grid:   newGrid(),
		Stars:  newStars(cfg.starCount, cfg.seed),
	}
}

func newGround(normalMap string) game_object.GameObject {
	opts := []material.MaterialBuilderOption{
		material.WithName("ground"),
		material.WithBaseColor(groundColor),
		material.WithMetallic(0),
		material.WithRoughness(1),
		material.WithPipelineKey(renderer.PipelineLit),
	}
	if normalMap != "" {
		opts = append(opts, material.WithNormalTexture(&common.ImportedTexture{Name: "normal", Path: normalMap}))
	}

	mdl := model.NewModel(
		model.WithName("ground"),
		model.WithMeshes([]model.ImportedMesh{geometry.Box(groundSize, 1, groundSize, [4]float32{1, 1, 1, 1})}),
		model.WithMaterials(material.NewMaterial(opts...)),
		model.WithPipelineKey(renderer.PipelineLit),
	)
	return game_object.NewGameObject(game_object.WithName("ground"), game_object.WithModel(mdl))
}

func newGrid() game_object.GameObject {
	mdl := model.NewModel(
		model.WithName("grid"),
		model.WithMeshes([]model.ImportedMesh{geometry.Grid(groundSize, gridDivisions, common.HexColor(0x444444), common.HexColor(0x888888))}),
		model.WithMaterials(material.NewMaterial(
			material.WithName("grid"),
			material.WithUnlit(true),
			material.WithPipelineKey(renderer.PipelineLines),
		)),
		model.WithPipelineKey(renderer.PipelineLines),
	)
	return game_object.NewGameObject(game_object.WithName("grid"), game_object.WithModel(mdl))
}

// newStars scatters count white spheres uniformly in a cube around the origin. All stars share
// one model, so its mesh is uploaded once.
func newStars(count int, seed uint64) []game_object.GameObject {
	mdl := model.NewModel(
		model.WithName("star"),
		model.WithMeshes([]model.ImportedMesh{geometry.Sphere(starRadius, starSegments, starSegments, [4]float32{1, 1, 1, 1})}),
		model.WithMaterials(material.NewMaterial(
			material.WithName("star"),
			material.WithHexColor(0xffffff),
			material.WithMetallic(0),
			material.WithRoughness(1),
			material.WithPipelineKey(renderer.PipelineLit),
		)),
		model.WithPipelineKey(renderer.PipelineLit),
	)

	rng := rand.New(rand.NewPCG(seed, seed^math.MaxUint32))
	spread := func() float32 { return (rng.Float32()*2 - 1) * starSpread }

	stars := make([]game_object.GameObject, max(count, 0))
	for i := range stars {
		stars[i] = game_object.NewGameObject(
			game_object.WithName(fmt.Sprintf("star_%d", i)),
			game_object.WithModel(mdl),
			game_object.WithPosition(mgl32.Vec3{spread(), spread(), spread()}),
		)
	}
	return stars
}
