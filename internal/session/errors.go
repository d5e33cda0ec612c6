// internal/session/errors.go
package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState indicates an operation called out of order.
	ErrInvalidState = errors.New("invalid session state")

	// ErrHostUnavailable indicates the host could not be reached or launched.
	ErrHostUnavailable = errors.New("presentation host unavailable")

	// ErrSourceProcessing indicates a source file could not be opened or copied.
	ErrSourceProcessing = errors.New("source processing failed")

	// ErrSave indicates the destination could not be written.
	ErrSave = errors.New("save failed")
)

// SourceError names the source file that failed. Slide is the 1-based
// slide being copied, or 0 when the file itself could not be handled.
type SourceError struct {
	Path  string
	Slide int
	Err   error
}

func (e *SourceError) Error() string {
	if e.Slide > 0 {
		return fmt.Sprintf("%s: %s (slide %d): %v", ErrSourceProcessing, e.Path, e.Slide, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrSourceProcessing, e.Path, e.Err)
}

// Unwrap exposes both ErrSourceProcessing and the underlying cause.
func (e *SourceError) Unwrap() []error {
	return []error{ErrSourceProcessing, e.Err}
}
