package buffer_provider

// BufferProviderOption is a functional option used to configure a BufferProvider during construction.
type BufferProviderOption func(*bufferProvider)

// WithLabel sets the debug label of the provider, used in error messages.
//
// Parameters:
//   - label: the label
//
// Returns:
//   - BufferProviderOption: a function that sets the label for this provider
func WithLabel(label string) BufferProviderOption {
	return func(p *bufferProvider) {
		p.label = label
	}
}
