package game

import "github.com/Carmen-Shannon/oxy-robot/engine/model"

// AppBuilderOption is a function that configures an app during construction.
type AppBuilderOption func(*app)

// WithInputHandler sets the handler receiving key events. Defaults to NewInputHandler().
func WithInputHandler(h InputHandler) AppBuilderOption {
	return func(a *app) {
		a.input = h
	}
}

// WithControllerOptions sets the options used to build the animation controller once the
// model has loaded.
//
// Parameters:
//   - options: controller options, e.g. WithRestingState
//
// Returns:
//   - AppBuilderOption: a function that applies the controller options to an app
func WithControllerOptions(options ...AnimationControllerBuilderOption) AppBuilderOption {
	return func(a *app) {
		a.controllerOps = append(a.controllerOps, options...)
	}
}

// WithControllerFactory replaces how the controller is built from the loaded model.
func WithControllerFactory(factory func(model.Model) AnimationController) AppBuilderOption {
	return func(a *app) {
		a.newController = factory
	}
}
