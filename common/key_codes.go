package common

// Key codes delivered by the window key callbacks.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyP     = 80  // P key (ASCII), pause/resume
	KeyR     = 82  // R key (ASCII), restart after the session ends
	KeySpace = 32  // Spacebar (ASCII), press play
	KeyEsc   = 256 // Escape key (GLFW)

	KeyRight = 262 // Right arrow (GLFW), orbit right
	KeyLeft  = 263 // Left arrow (GLFW), orbit left
	KeyDown  = 264 // Down arrow (GLFW), orbit down
	KeyUp    = 265 // Up arrow (GLFW), orbit up
)
