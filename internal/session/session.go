// internal/session/session.go
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/vmunix/slidemerge/internal/host"
)

// State is a step in the session lifecycle.
type State int

const (
	Disconnected State = iota
	Connected
	DestinationOpen
	SourceOpen
	Saved
	Closed
	Failed
)

var stateNames = map[State]string{
	Disconnected:    "disconnected",
	Connected:       "connected",
	DestinationOpen: "destination_open",
	SourceOpen:      "source_open",
	Saved:           "saved",
	Closed:          "closed",
	Failed:          "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// CloseMode selects how much Close tears down.
type CloseMode int

const (
	// CloseSuccess closes the saved destination and leaves the host
	// running so the result can be shown.
	CloseSuccess CloseMode = iota + 1
	// CloseFailure closes every open document and quits the host.
	CloseFailure
)

func (m CloseMode) String() string {
	switch m {
	case CloseSuccess:
		return "success"
	case CloseFailure:
		return "failure"
	default:
		return fmt.Sprintf("CloseMode(%d)", int(m))
	}
}

// SlideFunc is called after each slide is copied, with the 1-based slide
// number and the slide count of the source.
type SlideFunc func(current, total int)

// Session drives one merge against a host: one destination document and
// at most one source document open at a time. A Session is single use and
// not safe for concurrent use.
type Session struct {
	host host.Host
	log  *slog.Logger

	state     State
	connected bool
	dest      host.Presentation
	source    host.Presentation
	slides    int
}

// New creates a disconnected session.
func New(h host.Host, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{host: h, log: log.With("component", "session")}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Slides returns how many slides have been appended so far.
func (s *Session) Slides() int { return s.slides }

// Connect attaches to a running host or launches one.
func (s *Session) Connect(ctx context.Context) error {
	if err := s.expect("connect", Disconnected); err != nil {
		return err
	}

	err := s.host.Attach(ctx)
	if err == nil {
		s.state = Connected
		s.connected = true
		s.log.Debug("attached to running host")
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		s.state = Failed
		return ctxErr
	}
	if !errors.Is(err, host.ErrNotRunning) {
		s.log.Debug("attach failed, launching host", "error", err)
	}

	if err := s.host.Launch(ctx); err != nil {
		s.state = Failed
		return fmt.Errorf("%w: %w", ErrHostUnavailable, err)
	}
	s.connected = true
	s.state = Connected
	s.log.Info("host launched")
	return nil
}

// CreateDestination creates the empty document slides are appended to.
// Starter slides seeded by the host are removed first.
func (s *Session) CreateDestination(ctx context.Context) error {
	if err := s.expect("create destination", Connected); err != nil {
		return err
	}

	dest, err := s.host.NewPresentation(ctx)
	if err != nil {
		s.state = Failed
		return fmt.Errorf("%w: create presentation: %w", ErrHostUnavailable, err)
	}
	s.dest = dest

	n, err := dest.SlideCount(ctx)
	if err != nil {
		s.state = Failed
		return fmt.Errorf("%w: count starter slides: %w", ErrHostUnavailable, err)
	}
	for i := n - 1; i >= 0; i-- {
		if err := dest.DeleteSlide(ctx, i); err != nil {
			s.state = Failed
			return fmt.Errorf("%w: remove starter slide %d: %w", ErrHostUnavailable, i+1, err)
		}
	}
	if n > 0 {
		s.log.Debug("removed starter slides", "count", n)
	}

	s.state = DestinationOpen
	return nil
}

// AppendFrom copies every slide of path, in order, onto the end of the
// destination and returns the number copied. The source is opened read
// only and closed before AppendFrom returns. A failure leaves the session
// Failed and is reported as a *SourceError.
func (s *Session) AppendFrom(ctx context.Context, path string, onSlide SlideFunc) (int, error) {
	if err := s.expect("append", DestinationOpen); err != nil {
		return 0, err
	}
	log := s.log.With("path", path)

	src, err := s.host.Open(ctx, path, host.OpenMode{ReadOnly: true})
	if err != nil {
		s.state = Failed
		return 0, &SourceError{Path: path, Err: err}
	}
	s.source = src
	s.state = SourceOpen

	total, err := src.SlideCount(ctx)
	if err != nil {
		return 0, s.abortSource(ctx, &SourceError{Path: path, Err: err})
	}
	if total == 0 {
		log.Info("source has no slides")
	}

	for i := 0; i < total; i++ {
		if err := s.dest.CopySlideFrom(ctx, src, i); err != nil {
			return i, s.abortSource(ctx, &SourceError{Path: path, Slide: i + 1, Err: err})
		}
		if onSlide != nil {
			onSlide(i+1, total)
		}
	}

	s.source = nil
	if err := src.Close(ctx); err != nil {
		s.state = Failed
		return total, &SourceError{Path: path, Err: fmt.Errorf("close: %w", err)}
	}

	s.slides += total
	s.state = DestinationOpen
	log.Debug("source appended", "slides", total, "total_slides", s.slides)
	return total, nil
}

// abortSource closes the open source and marks the session failed.
func (s *Session) abortSource(ctx context.Context, cause error) error {
	s.state = Failed
	if s.source == nil {
		return cause
	}
	if err := s.source.Close(context.WithoutCancel(ctx)); err != nil {
		s.log.Warn("closing source after failure", "path", s.source.Path(), "error", err)
	}
	s.source = nil
	return cause
}

// Save writes the destination to path, replacing any existing file.
func (s *Session) Save(ctx context.Context, path string) error {
	if err := s.expect("save", DestinationOpen); err != nil {
		return err
	}
	if err := s.dest.SaveAs(ctx, path); err != nil {
		s.state = Failed
		return fmt.Errorf("%w: %s: %w", ErrSave, filepath.Base(path), err)
	}
	s.state = Saved
	s.log.Info("destination saved", "path", path, "slides", s.slides)
	return nil
}

// Close ends the session. CloseSuccess is only valid once saved and
// closes the destination alone; CloseFailure closes whatever is open,
// quits the host, and only logs what goes wrong along the way.
func (s *Session) Close(ctx context.Context, mode CloseMode) error {
	if s.state == Closed {
		return nil
	}

	switch mode {
	case CloseSuccess:
		if err := s.expect("close", Saved); err != nil {
			return err
		}
		s.state = Closed
		dest := s.dest
		s.dest = nil
		if err := dest.Close(ctx); err != nil {
			return fmt.Errorf("close destination: %w", err)
		}
		return nil

	case CloseFailure:
		s.teardown(context.WithoutCancel(ctx))
		return nil

	default:
		return fmt.Errorf("%w: unknown close mode %d", ErrInvalidState, int(mode))
	}
}

func (s *Session) teardown(ctx context.Context) {
	from := s.state
	s.state = Closed

	if s.source != nil {
		if err := s.source.Close(ctx); err != nil {
			s.log.Warn("closing source during teardown", "path", s.source.Path(), "error", err)
		}
		s.source = nil
	}
	if s.dest != nil {
		if err := s.dest.Close(ctx); err != nil {
			s.log.Warn("closing destination during teardown", "error", err)
		}
		s.dest = nil
	}
	if s.connected {
		if err := s.host.Quit(ctx); err != nil {
			s.log.Warn("quitting host during teardown", "error", err)
		}
	}
	s.log.Debug("session torn down", "from", from.String())
}

func (s *Session) expect(op string, want State) error {
	if s.state != want {
		return fmt.Errorf("%w: %s while %s", ErrInvalidState, op, s.state)
	}
	return nil
}
