// Package slideshow starts playback of a merged presentation.
package slideshow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vmunix/slidemerge/internal/events"
	"github.com/vmunix/slidemerge/internal/host"
	"github.com/vmunix/slidemerge/internal/queue"
)

// LaunchResult is the outcome of Launch.
type LaunchResult struct {
	Success bool
	Path    string
	Err     error // wraps ErrLaunch; nil on success
}

// Launcher opens a presentation in the host and starts the slideshow.
type Launcher struct {
	host host.Host
	bus  *events.Bus
	log  *slog.Logger
}

// NewLauncher creates a launcher. The bus is optional.
func NewLauncher(h host.Host, bus *events.Bus, log *slog.Logger) *Launcher {
	if log == nil {
		log = slog.Default()
	}
	return &Launcher{host: h, bus: bus, log: log.With("component", "slideshow")}
}

// Launch attaches to the host, or launches it, opens path read only in a
// visible window and starts playback. The presentation stays open for the
// show; it is closed only when playback could not start.
func (l *Launcher) Launch(ctx context.Context, path string) LaunchResult {
	log := l.log.With("path", path)
	id := events.NewRunID()

	if err := l.launch(ctx, path); err != nil {
		err = fmt.Errorf("%w: %w", ErrLaunch, err)
		log.Warn("slideshow not started", "error", err)
		l.publish(ctx, &events.SlideshowFailed{
			BaseEvent: events.NewBaseEvent(events.EventSlideshowFailed, events.EntitySlideshow, id),
			Path:      path,
			Reason:    err.Error(),
		})
		return LaunchResult{Path: path, Err: err}
	}

	log.Info("slideshow started")
	l.publish(ctx, &events.SlideshowStarted{
		BaseEvent: events.NewBaseEvent(events.EventSlideshowStarted, events.EntitySlideshow, id),
		Path:      path,
	})
	return LaunchResult{Success: true, Path: path}
}

func (l *Launcher) launch(ctx context.Context, path string) error {
	abs, err := queue.Check(path)
	if err != nil {
		return err
	}

	if err := l.host.Attach(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !errors.Is(err, host.ErrNotRunning) {
			l.log.Debug("attach failed, launching host", "error", err)
		}
		if err := l.host.Launch(ctx); err != nil {
			return fmt.Errorf("launch host: %w", err)
		}
	}

	pres, err := l.host.Open(ctx, abs, host.OpenMode{ReadOnly: true, WithWindow: true})
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	if err := pres.StartSlideShow(ctx); err != nil {
		if cerr := pres.Close(context.WithoutCancel(ctx)); cerr != nil {
			l.log.Warn("closing presentation after failed slideshow", "error", cerr)
		}
		return fmt.Errorf("start: %w", err)
	}
	return nil
}

func (l *Launcher) publish(ctx context.Context, e events.Event) {
	if l.bus == nil {
		return
	}
	if err := l.bus.Publish(ctx, e); err != nil {
		l.log.Warn("publish event", "type", e.EventType(), "error", err)
	}
}
