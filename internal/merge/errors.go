// internal/merge/errors.go
package merge

import (
	"errors"

	"github.com/vmunix/slidemerge/internal/session"
)

var (
	// ErrValidation indicates a malformed request. The host is never
	// contacted for one.
	ErrValidation = errors.New("invalid merge request")

	// ErrHostUnavailable indicates the host could not be reached or launched.
	ErrHostUnavailable = session.ErrHostUnavailable

	// ErrSourceProcessing indicates a source could not be opened or copied.
	// The error is a *SourceError naming the file.
	ErrSourceProcessing = session.ErrSourceProcessing

	// ErrSave indicates the merged presentation could not be written.
	ErrSave = session.ErrSave
)

// SourceError names the source file a merge failed on.
type SourceError = session.SourceError

// FailedSource returns the path of the source err names, or "".
func FailedSource(err error) string {
	var srcErr *SourceError
	if errors.As(err, &srcErr) {
		return srcErr.Path
	}
	return ""
}
