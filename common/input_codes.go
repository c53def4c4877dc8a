package common

// Mouse button codes for cross-platform input handling.
// These values match GLFW mouse button codes.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#MouseButton
const (
	MouseButtonLeft   = 0
	MouseButtonRight  = 1
	MouseButtonMiddle = 2
)

// Key codes used by the engine's default bindings. Values match GLFW key codes.
const (
	KeyEsc = 256 // Escape key (GLFW)
	KeyR   = 82  // R key (ASCII)
)

// MouseButtonByName resolves a configuration name ("left", "right", "middle") to its button code.
//
// Parameters:
//   - name: the button name
//
// Returns:
//   - int: the button code
//   - bool: false if the name is not a known button
func MouseButtonByName(name string) (int, bool) {
	switch name {
	case "left":
		return MouseButtonLeft, true
	case "right":
		return MouseButtonRight, true
	case "middle":
		return MouseButtonMiddle, true
	}
	return 0, false
}
