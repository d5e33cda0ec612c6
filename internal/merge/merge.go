// Package merge combines presentations into one, in order, through a
// presentation host.
package merge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/vmunix/slidemerge/internal/events"
	"github.com/vmunix/slidemerge/internal/host"
	"github.com/vmunix/slidemerge/internal/session"
)

// ProgressFunc receives progress as (label, current, total). It is called
// synchronously, in merge order, from the goroutine running Merge.
type ProgressFunc func(label string, current, total int)

// Granularity selects what one unit of progress is.
type Granularity int

const (
	// GranularityFile reports (file name, file number, file count) after
	// each source has been appended.
	GranularityFile Granularity = iota
	// GranularitySlide reports (file name, slide number, slides in file)
	// after each slide. Counts restart for every file; a source without
	// slides reports nothing.
	GranularitySlide
)

// ParseGranularity maps "file" or "slide" to a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "", "file":
		return GranularityFile, nil
	case "slide":
		return GranularitySlide, nil
	default:
		return GranularityFile, fmt.Errorf("unknown progress granularity %q", s)
	}
}

func (g Granularity) String() string {
	if g == GranularitySlide {
		return "slide"
	}
	return "file"
}

// Request describes one merge. Sources are merged in the order given.
type Request struct {
	Sources     []string
	Output      string
	Progress    ProgressFunc // optional
	Granularity Granularity
}

// Result is the outcome of a merge.
type Result struct {
	Success    bool
	OutputPath string // absolute; empty on failure
	Err        error  // nil on success

	Files    int // sources fully appended
	Slides   int // slides appended
	Duration time.Duration
}

// Orchestrator runs merges against a host. Run one merge at a time per
// host; Merge blocks until the merge is done.
type Orchestrator struct {
	host host.Host
	bus  *events.Bus
	log  *slog.Logger
}

// NewOrchestrator creates an orchestrator. The bus is optional.
func NewOrchestrator(h host.Host, bus *events.Bus, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{host: h, bus: bus, log: log}
}

// Merge validates req, appends every source to a new presentation and
// saves it to req.Output. Failures are reported in the Result, never as a
// panic. On success the host is left running so the output can be shown;
// on failure it is shut down and nothing is written.
//
// ctx is checked before each source: cancelling it stops the merge at the
// next file boundary.
func (o *Orchestrator) Merge(ctx context.Context, req Request) Result {
	start := time.Now()
	run := events.NewRunID()
	log := o.log.With("component", "merge", "run", run)

	sources, output, err := validate(req)
	if err != nil {
		log.Warn("merge request rejected", "error", err)
		o.publish(ctx, &events.MergeFailed{
			BaseEvent: events.NewBaseEvent(events.EventMergeFailed, events.EntityMerge, run),
			Output:    req.Output,
			Stage:     "validate",
			Reason:    err.Error(),
		})
		return Result{Err: err, Duration: time.Since(start)}
	}

	log.Info("merge started", "sources", len(sources), "output", output)
	o.publish(ctx, &events.MergeStarted{
		BaseEvent: events.NewBaseEvent(events.EventMergeStarted, events.EntityMerge, run),
		Output:    output,
		Sources:   sources,
	})

	sess := session.New(o.host, log)
	files := 0

	// A panicking progress callback is the caller's bug and keeps
	// panicking, but the host is released first.
	defer func() {
		if r := recover(); r != nil {
			_ = sess.Close(ctx, session.CloseFailure)
			panic(r)
		}
	}()

	fail := func(stage, source string, err error) Result {
		_ = sess.Close(ctx, session.CloseFailure)
		log.Error("merge failed", "stage", stage, "source", source, "error", err)
		o.publish(ctx, &events.MergeFailed{
			BaseEvent: events.NewBaseEvent(events.EventMergeFailed, events.EntityMerge, run),
			Output:    output,
			Source:    source,
			Stage:     stage,
			Reason:    err.Error(),
		})
		return Result{Err: err, Files: files, Slides: sess.Slides(), Duration: time.Since(start)}
	}

	if err := sess.Connect(ctx); err != nil {
		return fail("connect", "", err)
	}
	if err := sess.CreateDestination(ctx); err != nil {
		return fail("connect", "", err)
	}

	total := len(sources)
	for i, src := range sources {
		label := filepath.Base(src)
		if err := ctx.Err(); err != nil {
			return fail("cancel", "", fmt.Errorf("merge stopped before %s: %w", label, err))
		}

		var onSlide session.SlideFunc
		if req.Progress != nil && req.Granularity == GranularitySlide {
			onSlide = func(current, count int) { req.Progress(label, current, count) }
		}

		slides, err := sess.AppendFrom(ctx, src, onSlide)
		if err != nil {
			return fail("append", src, err)
		}
		files++

		if req.Progress != nil && req.Granularity == GranularityFile {
			req.Progress(label, i+1, total)
		}
		o.publish(ctx, &events.FileMerged{
			BaseEvent: events.NewBaseEvent(events.EventFileMerged, events.EntityMerge, run),
			Path:      src,
			Index:     i + 1,
			Total:     total,
			Slides:    slides,
		})
	}

	if err := sess.Save(ctx, output); err != nil {
		return fail("save", "", err)
	}
	if err := sess.Close(ctx, session.CloseSuccess); err != nil {
		log.Warn("closing merged presentation", "error", err)
	}

	result := Result{
		Success:    true,
		OutputPath: output,
		Files:      files,
		Slides:     sess.Slides(),
		Duration:   time.Since(start),
	}
	log.Info("merge completed", "output", output, "files", result.Files, "slides", result.Slides,
		"duration_ms", result.Duration.Milliseconds())
	o.publish(ctx, &events.MergeCompleted{
		BaseEvent:  events.NewBaseEvent(events.EventMergeCompleted, events.EntityMerge, run),
		Output:     output,
		Files:      result.Files,
		Slides:     result.Slides,
		DurationMS: result.Duration.Milliseconds(),
	})
	return result
}

func (o *Orchestrator) publish(ctx context.Context, e events.Event) {
	if o.bus == nil {
		return
	}
	if err := o.bus.Publish(ctx, e); err != nil {
		o.log.Warn("publish event", "type", e.EventType(), "error", err)
	}
}

// Describe renders a failed Result's error for people, naming the
// offending file where there is one.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return err.Error()
	case errors.Is(err, ErrSourceProcessing):
		return fmt.Sprintf("could not merge %s: %v", filepath.Base(FailedSource(err)), err)
	case errors.Is(err, ErrHostUnavailable):
		return fmt.Sprintf("presentation host unavailable: %v", err)
	case errors.Is(err, ErrSave):
		return fmt.Sprintf("could not save the merged presentation: %v", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("merge cancelled: %v", err)
	default:
		return err.Error()
	}
}
