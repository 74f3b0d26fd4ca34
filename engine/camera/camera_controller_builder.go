package camera

// CameraControllerOption is a functional option for configuring an ArcballController.
type CameraControllerOption func(*arcballControllerImpl)

// WithViewport sets the initial window size the arcball is fitted to.
//
// Parameters:
//   - width: window width in screen coordinates
//   - height: window height in screen coordinates
//
// Returns:
//   - CameraControllerOption: functional option to set the viewport
func WithViewport(width, height int) CameraControllerOption {
	return func(ac *arcballControllerImpl) {
		ac.width = width
		ac.height = height
	}
}

// WithMargin sets how much smaller than the window's short side the arcball diameter is.
//
// Parameters:
//   - margin: the margin in screen coordinates
//
// Returns:
//   - CameraControllerOption: functional option to set the margin
func WithMargin(margin float32) CameraControllerOption {
	return func(ac *arcballControllerImpl) {
		ac.margin = margin
	}
}

// WithOrbitSpeed sets the keyboard orbit speed.
//
// Parameters:
//   - speed: radians per orbit step
//
// Returns:
//   - CameraControllerOption: functional option to set the orbit speed
func WithOrbitSpeed(speed float32) CameraControllerOption {
	return func(ac *arcballControllerImpl) {
		ac.orbitSpeed = speed
	}
}
