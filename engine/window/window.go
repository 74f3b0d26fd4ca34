package window

import (
	"fmt"
	"runtime"
)

// MouseButton identifies a mouse button in pointer callbacks.
type MouseButton int

const (
	// MouseLeft is the primary button, used to pick.
	MouseLeft MouseButton = iota

	// MouseRight is the secondary button, used to drag the arcball.
	MouseRight

	// MouseMiddle is the middle button.
	MouseMiddle
)

// Window provides platform windowing, an OpenGL context and input event handling.
// Wraps platform-specific window implementations with a common interface.
// Pointer positions are in window coordinates with the origin at the top-left corner.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window or its framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving the window size in screen coordinates and the
	//     framebuffer size in pixels
	SetResizeCallback(callback func(windowWidth, windowHeight, framebufferWidth, framebufferHeight int))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMouseDownCallback sets the callback for mouse button presses.
	//
	// Parameters:
	//   - callback: function receiving the button and the pointer position
	SetMouseDownCallback(callback func(button MouseButton, x, y float64))

	// SetMouseUpCallback sets the callback for mouse button releases.
	//
	// Parameters:
	//   - callback: function receiving the button and the pointer position
	SetMouseUpCallback(callback func(button MouseButton, x, y float64))

	// SetMouseMoveCallback sets the callback for mouse movement.
	//
	// Parameters:
	//   - callback: function receiving the pointer position
	SetMouseMoveCallback(callback func(x, y float64))

	// PollEvents dispatches pending input events to the callbacks without blocking.
	//
	// Returns:
	//   - bool: false once the window should close
	PollEvents() bool

	// SwapBuffers presents the back buffer.
	SwapBuffers()

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Width returns the current window width in screen coordinates.
	//
	// Returns:
	//   - int: width
	Width() int

	// Height returns the current window height in screen coordinates.
	//
	// Returns:
	//   - int: height
	Height() int

	// FramebufferSize returns the drawable size in pixels. It differs from Width and Height
	// on high-DPI displays.
	//
	// Returns:
	//   - int: framebuffer width in pixels
	//   - int: framebuffer height in pixels
	FramebufferSize() (int, int)
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// minWidth is the minimum allowed window width during resize.
	minWidth int

	// minHeight is the minimum allowed window height during resize.
	minHeight int

	// width is the current window width in screen coordinates.
	width int

	// height is the current window height in screen coordinates.
	height int

	// fbWidth is the current framebuffer width in pixels.
	fbWidth int

	// fbHeight is the current framebuffer height in pixels.
	fbHeight int

	// vsync enables buffer swap synchronisation with the display refresh.
	vsync bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the window or framebuffer is resized.
	onResize func(windowWidth, windowHeight, framebufferWidth, framebufferHeight int)

	// onKeyDown is called when a key is pressed.
	onKeyDown func(keyCode uint32)

	// onKeyUp is called when a key is released.
	onKeyUp func(keyCode uint32)

	// onMouseDown is called when a mouse button is pressed.
	onMouseDown func(button MouseButton, x, y float64)

	// onMouseUp is called when a mouse button is released.
	onMouseUp func(button MouseButton, x, y float64)

	// onMouseMove is called when the mouse moves within the window.
	onMouseMove func(x, y float64)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with an OpenGL 4.1 core context made current on the calling
// thread, which is locked to its OS thread. Applies default values first, then each option in
// order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
//   - error: error if GLFW or the context cannot be initialized
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "Bacteria Basher",
		minWidth:  320,
		minHeight: 240,
		width:     800,
		height:    600,
		vsync:     true,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(windowWidth, windowHeight, framebufferWidth, framebufferHeight int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseDownCallback(callback func(button MouseButton, x, y float64)) {
	w.onMouseDown = callback
}

func (w *engineWindow) SetMouseUpCallback(callback func(button MouseButton, x, y float64)) {
	w.onMouseUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float64)) {
	w.onMouseMove = callback
}

func (w *engineWindow) PollEvents() bool {
	return platformProcessMessages(w)
}

func (w *engineWindow) SwapBuffers() {
	platformSwapBuffers(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) FramebufferSize() (int, int) {
	return w.fbWidth, w.fbHeight
}

// resized records new sizes and notifies the resize callback.
func (w *engineWindow) resized(width, height, fbWidth, fbHeight int) {
	w.width, w.height = width, height
	w.fbWidth, w.fbHeight = fbWidth, fbHeight
	if w.onResize != nil {
		w.onResize(width, height, fbWidth, fbHeight)
	}
}
