package animation

// MixerBuilderOption is a functional option for configuring a Mixer via NewMixer.
type MixerBuilderOption func(*Mixer)

// WithTimeScale sets the initial global speed factor of the mixer.
//
// Parameters:
//   - timeScale: multiplier applied to every Update delta
//
// Returns:
//   - MixerBuilderOption: a function that sets the time scale
func WithTimeScale(timeScale float32) MixerBuilderOption {
	return func(m *Mixer) {
		m.timeScale = timeScale
	}
}
