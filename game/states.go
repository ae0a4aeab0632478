package game

import "slices"

const (
	// StateIdle is the state entered when a model finishes loading and on every key release.
	StateIdle = "Idle"

	// StateWalking is the locomotion state for movement keys and the default resting state.
	StateWalking = "Walking"

	// DefaultFade is the fade used on key release.
	DefaultFade float32 = 0

	// TransitionFade is the cross-fade for movement keys and emote enter/exit.
	TransitionFade float32 = 0.2

	// firstOneShotState is the first index in StateNames that plays once and clamps.
	firstOneShotState = 4
)

// StateNames lists the robot's named states. Entries before index 4 loop; the rest hold
// their final pose.
var StateNames = []string{"Idle", "Walking", "Running", "Dance", "Death", "Sitting", "Standing"}

// EmoteNames lists the one-shot emotes, in emote key order (1 through 6).
var EmoteNames = []string{"Jump", "Yes", "No", "Wave", "Punch", "ThumbsUp"}

// IsEmote reports whether name is one of EmoteNames.
func IsEmote(name string) bool {
	return slices.Contains(EmoteNames, name)
}

// IsOneShot reports whether the clip called name plays once and clamps on its last frame.
// Emotes and states from Death onwards are one-shot; every other clip loops.
//
// Parameters:
//   - name: the clip name
//
// Returns:
//   - bool: true for LoopOnce + clampWhenFinished clips
func IsOneShot(name string) bool {
	if IsEmote(name) {
		return true
	}
	return slices.Index(StateNames, name) >= firstOneShotState
}
