package batch

import "errors"

var (
	// ErrManifest indicates a manifest that cannot be read or is malformed.
	ErrManifest = errors.New("invalid batch manifest")

	// ErrJobsFailed indicates at least one job did not produce its output.
	ErrJobsFailed = errors.New("batch jobs failed")
)
