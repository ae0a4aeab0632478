package game

import "github.com/Carmen-Shannon/oxy-robot/engine/game_object"

// InputHandlerBuilderOption is a function that configures an input handler during construction.
type InputHandlerBuilderOption func(*inputHandler)

// WithController sets the controller receiving state requests.
func WithController(controller AnimationController) InputHandlerBuilderOption {
	return func(h *inputHandler) {
		h.controller = controller
	}
}

// WithPlayer sets the object moved by the movement keys.
func WithPlayer(player game_object.GameObject) InputHandlerBuilderOption {
	return func(h *inputHandler) {
		h.player = player
	}
}

// WithStepDistance sets how far a movement key's target lies from the player. Defaults to 3.
func WithStepDistance(distance float32) InputHandlerBuilderOption {
	return func(h *inputHandler) {
		h.speed = distance
	}
}

// WithSmoothing sets the fraction of the way to the target covered per key event.
// Defaults to 0.09.
//
// Parameters:
//   - factor: interpolation factor in (0, 1]
//
// Returns:
//   - InputHandlerBuilderOption: a function that applies the smoothing option to a handler
func WithSmoothing(factor float32) InputHandlerBuilderOption {
	return func(h *inputHandler) {
		h.smoothing = factor
	}
}

// WithEmoteKeys binds keys 1 through 6 to the emotes in EmoteNames order.
func WithEmoteKeys(enabled bool) InputHandlerBuilderOption {
	return func(h *inputHandler) {
		h.emotesEnabled = enabled
	}
}
