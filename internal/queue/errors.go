package queue

import "errors"

var (
	// ErrDuplicate indicates the path is already queued.
	ErrDuplicate = errors.New("already queued")

	// ErrUnsupportedType indicates the file is not a presentation.
	ErrUnsupportedType = errors.New("not a presentation file")

	// ErrUnreadable indicates the file is missing or cannot be read.
	ErrUnreadable = errors.New("file missing or unreadable")
)
