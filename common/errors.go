package common

import "errors"

// Sentinel errors shared across the engine. Callers wrap them with context via
// fmt.Errorf("...: %w", err) and test for them with errors.Is.
var (
	// ErrConfiguration marks a fatal start-up problem: a shader that fails to compile or link,
	// an attribute or uniform name the compiled program does not expose, a subdivision depth
	// outside the supported range, or an invalid id range.
	ErrConfiguration = errors.New("configuration error")

	// ErrPoolExhausted is returned when every representable object id is held by a live object.
	ErrPoolExhausted = errors.New("identity pool exhausted")

	// ErrReleased is returned when a GPU buffer handle is used after its owner released it.
	ErrReleased = errors.New("buffer released")

	// ErrDisposed is returned when a renderable is drawn or mutated after Dispose.
	ErrDisposed = errors.New("renderable disposed")
)
