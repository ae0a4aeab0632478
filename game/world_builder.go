package game

// WorldBuilderOption is a function that configures BuildWorld.
type WorldBuilderOption func(*worldConfig)

// WithSceneName sets the scene's name. Defaults to "robot".
func WithSceneName(name string) WorldBuilderOption {
	return func(c *worldConfig) {
		c.name = name
	}
}

// WithAspect sets the initial camera aspect ratio (width / height).
func WithAspect(aspect float32) WorldBuilderOption {
	return func(c *worldConfig) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithStars sets how many stars are scattered around the scene. Defaults to 200.
func WithStars(count int) WorldBuilderOption {
	return func(c *worldConfig) {
		c.starCount = count
	}
}

// WithSeed seeds the star placement.
func WithSeed(seed uint64) WorldBuilderOption {
	return func(c *worldConfig) {
		c.seed = seed
	}
}

// WithGroundNormalMap sets the image file used as the ground's normal map. An empty path, or a
// file that fails to decode, leaves the ground flat.
//
// Parameters:
//   - path: path to a PNG or JPEG normal map
//
// Returns:
//   - WorldBuilderOption: a function that applies the normal map option
func WithGroundNormalMap(path string) WorldBuilderOption {
	return func(c *worldConfig) {
		c.normalMap = path
	}
}

// WithOrbitDamping sets the angular frequency of the orbit camera springs.
func WithOrbitDamping(angularFrequency float64) WorldBuilderOption {
	return func(c *worldConfig) {
		c.orbitDamping = angularFrequency
	}
}
