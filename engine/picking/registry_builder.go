package picking

import "math/rand/v2"

// RegistryBuilderOption is a functional option for configuring a Registry during construction.
type RegistryBuilderOption func(*registry)

// WithRand sets the random source Acquire draws from. Useful for reproducible sessions.
//
// Parameters:
//   - rng: the source
//
// Returns:
//   - RegistryBuilderOption: functional option to set the source
func WithRand(rng *rand.Rand) RegistryBuilderOption {
	return func(r *registry) {
		r.rng = rng
	}
}
