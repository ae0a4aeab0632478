package scene

import "github.com/Carmen-Shannon/oxy-robot/engine/light"

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithFog sets linear distance fog. The renderer clear color is set to the fog color.
//
// Parameters:
//   - fog: fog color and distances
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFog(fog Fog) SceneBuilderOption {
	return func(s *scene) {
		s.fog = fog
	}
}

// WithLights sets the initial lights.
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.lights = append(s.lights, lights...)
	}
}

// WithCullingDisabled turns off CPU frustum culling; every enabled object is drawn.
func WithCullingDisabled(disabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.cullingDisabled = disabled
	}
}
