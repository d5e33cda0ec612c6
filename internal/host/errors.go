package host

import "errors"

var (
	// ErrNotRunning indicates no host instance is available to attach to.
	ErrNotRunning = errors.New("host not running")

	// ErrClosed indicates an operation on a presentation that was already closed.
	ErrClosed = errors.New("presentation closed")

	// ErrReadOnly indicates a write to a presentation opened read-only.
	ErrReadOnly = errors.New("presentation is read-only")

	// ErrSlideIndex indicates a slide index outside the presentation.
	ErrSlideIndex = errors.New("slide index out of range")

	// ErrForeignPresentation indicates a presentation owned by a different host.
	ErrForeignPresentation = errors.New("presentation belongs to another host")
)
