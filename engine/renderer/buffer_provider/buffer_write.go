package buffer_provider

import "fmt"

// BufferWrite describes a whole-buffer upload targeting one array of a BufferProvider.
type BufferWrite struct {
	Provider BufferProvider
	Kind     BufferKind
	Data     []byte
}

// WriteBuffers performs every write in order and stops at the first failure.
//
// Parameters:
//   - writes: the uploads to perform
//
// Returns:
//   - error: the first failure, naming the provider and array
func WriteBuffers(writes []BufferWrite) error {
	for _, w := range writes {
		if err := w.Provider.Write(w.Kind, w.Data); err != nil {
			return fmt.Errorf("write %s of %q: %w", w.Kind, w.Provider.Label(), err)
		}
	}
	return nil
}
