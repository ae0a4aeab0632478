package game

import "github.com/Carmen-Shannon/oxy-robot/engine/animation"

// AnimationControllerBuilderOption is a function that configures an animation controller during construction.
type AnimationControllerBuilderOption func(*animationController)

// WithRestingState sets the state a finished one-shot returns to. Defaults to Walking.
//
// Parameters:
//   - name: the resting state's clip name
//
// Returns:
//   - AnimationControllerBuilderOption: a function that applies the resting state option
func WithRestingState(name string) AnimationControllerBuilderOption {
	return func(c *animationController) {
		if name != "" {
			c.resting = name
		}
	}
}

// WithMixerOptions passes options through to the controller's mixer.
func WithMixerOptions(options ...animation.MixerBuilderOption) AnimationControllerBuilderOption {
	return func(c *animationController) {
		c.mixerOpts = append(c.mixerOpts, options...)
	}
}
