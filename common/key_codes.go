package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87  // W key (ASCII)
	KeyA     = 65  // A key (ASCII)
	KeyS     = 83  // S key (ASCII)
	KeyD     = 68  // D key (ASCII)
	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)

	Key1 = 49 // 1 key (ASCII)
	Key2 = 50 // 2 key (ASCII)
	Key3 = 51 // 3 key (ASCII)
	Key4 = 52 // 4 key (ASCII)
	Key5 = 53 // 5 key (ASCII)
	Key6 = 54 // 6 key (ASCII)
)

// KeyName returns the lower-case character for printable ASCII key codes and "" otherwise.
// Letter keys report their lower-case form so "w" matches both w and W presses.
//
// Parameters:
//   - keyCode: the GLFW key code
//
// Returns:
//   - string: single-character key name, or empty for non-printable keys
func KeyName(keyCode uint32) string {
	switch {
	case keyCode >= 'A' && keyCode <= 'Z':
		return string(rune(keyCode - 'A' + 'a'))
	case keyCode >= 32 && keyCode < 127:
		return string(rune(keyCode))
	default:
		return ""
	}
}
