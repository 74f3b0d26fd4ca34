package software_backend

// SoftwareBackendOption is a functional option used to configure a SoftwareBackend during construction.
type SoftwareBackendOption func(*softwareBackend)

// WithSize sets the initial framebuffer size. The renderer normally overrides it through Viewport.
//
// Parameters:
//   - width: the width in pixels
//   - height: the height in pixels
//
// Returns:
//   - SoftwareBackendOption: a function that applies the size option to a backend
func WithSize(width, height int) SoftwareBackendOption {
	return func(b *softwareBackend) {
		b.width = width
		b.height = height
	}
}
