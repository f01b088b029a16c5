package segment

import "fmt"

// SequenceNotFoundError indicates an anchor phrase is absent from the
// bold-span index in a context with no defined fallback.
type SequenceNotFoundError struct {
	Anchor string
}

func (e *SequenceNotFoundError) Error() string {
	return fmt.Sprintf("anchor sequence %q not found in bold-span index", e.Anchor)
}

// KeyNotFoundError indicates an expected bold-span key is missing after all
// fallback strategies were exhausted. Callers can distinguish it from
// SequenceNotFoundError with errors.As.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("bold-span key %q not found", e.Key)
}
