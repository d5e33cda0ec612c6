// Package host defines the capability set the merge core needs from a
// presentation-editing automation host.
package host

import "context"

//go:generate mockgen -destination=mocks/host.go -package=mocks github.com/vmunix/slidemerge/internal/host Host,Presentation

// OpenMode controls how a presentation is opened.
type OpenMode struct {
	ReadOnly   bool
	WithWindow bool
}

// Host is a running (or launchable) presentation application.
type Host interface {
	// Attach connects to an already-running instance.
	// Returns ErrNotRunning if there is none.
	Attach(ctx context.Context) error

	// Launch starts a new instance.
	Launch(ctx context.Context) error

	// NewPresentation creates a blank working document.
	// Some hosts seed it with a starter slide.
	NewPresentation(ctx context.Context) (Presentation, error)

	// Open opens an existing presentation file.
	Open(ctx context.Context, path string, mode OpenMode) (Presentation, error)

	// Quit terminates the application, closing anything still open.
	Quit(ctx context.Context) error
}

// Presentation is a document held open by a Host.
// Slide indexes are zero-based.
type Presentation interface {
	// Path returns the file the presentation was opened from or saved to.
	// Empty for a presentation that was never saved.
	Path() string

	SlideCount(ctx context.Context) (int, error)
	DeleteSlide(ctx context.Context, index int) error

	// CopySlideFrom appends slide index of src to the end of this presentation.
	CopySlideFrom(ctx context.Context, src Presentation, index int) error

	// SaveAs writes the presentation to path, replacing any existing file.
	SaveAs(ctx context.Context, path string) error

	// StartSlideShow starts playback of the presentation.
	StartSlideShow(ctx context.Context) error

	Close(ctx context.Context) error
}
