package camera

// ArcballController turns pointer drags and orbit keys into rotations of a Camera's view about
// the camera's target. Window coordinates have their origin at the top-left corner.
type ArcballController interface {
	// BeginDrag stashes the current view and projects the pointer onto the arcball.
	//
	// Parameters:
	//   - x, y: pointer position in window coordinates
	BeginDrag(x, y float32)

	// Drag rotates the stashed view by the arc from the drag start to the pointer. Returns
	// the view to the stash when the two points coincide. Does nothing outside a drag.
	//
	// Parameters:
	//   - x, y: pointer position in window coordinates
	Drag(x, y float32)

	// EndDrag keeps the current view and ends the drag.
	EndDrag()

	// Dragging reports whether a drag is in progress.
	//
	// Returns:
	//   - bool: true between BeginDrag and EndDrag
	Dragging() bool

	// OrbitLeft turns the scene left about the target by one orbit speed step.
	OrbitLeft()

	// OrbitRight turns the scene right about the target by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the scene up about the target by one orbit speed step.
	OrbitUp()

	// OrbitDown tilts the scene down about the target by one orbit speed step.
	OrbitDown()

	// SetViewport sets the window size the arcball is fitted to.
	//
	// Parameters:
	//   - width, height: window size in screen coordinates
	SetViewport(width, height int)

	// ArcballRadius returns the arcball radius in window coordinates.
	//
	// Returns:
	//   - float32: (min(width, height) - margin) / 2
	ArcballRadius() float32

	// OrbitSpeed returns the keyboard orbit speed in radians per step.
	//
	// Returns:
	//   - float32: radians per orbit call
	OrbitSpeed() float32
}
