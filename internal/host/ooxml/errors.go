package ooxml

import "errors"

var (
	// ErrNotPresentation indicates the file is not a readable presentation package.
	ErrNotPresentation = errors.New("not a presentation package")

	// ErrCorruptPackage indicates the package structure could not be followed.
	ErrCorruptPackage = errors.New("corrupt presentation package")

	// ErrSaveFailed indicates the package could not be written.
	ErrSaveFailed = errors.New("failed to save presentation")

	// ErrNotSaved indicates playback of a presentation with no file on disk.
	ErrNotSaved = errors.New("presentation has not been saved")

	// ErrViewer indicates the slideshow viewer could not be started.
	ErrViewer = errors.New("failed to start viewer")
)
