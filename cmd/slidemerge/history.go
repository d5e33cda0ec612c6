package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/slidemerge/internal/events"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent merges and slideshows",
	Example: `  slidemerge history
  slidemerge history --since 24h --all
  slidemerge history --run 1760000000000001`,
	RunE: runHistoryCmd,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 20, "Number of entries to show")
	historyCmd.Flags().Bool("all", false, "Include per-file events")
	historyCmd.Flags().Duration("since", 0, "Only entries newer than this (e.g. 24h)")
	historyCmd.Flags().Int64("run", 0, "Every event of one merge or slideshow run")
	historyCmd.Flags().Duration("prune", 0, "Delete entries older than this (e.g. 720h)")
}

// outcomeEvents are listed without --all.
var outcomeEvents = []string{
	events.EventMergeCompleted,
	events.EventMergeFailed,
	events.EventSlideshowStarted,
	events.EventSlideshowFailed,
}

type historyQuery struct {
	limit int
	all   bool
	since time.Duration
	run   int64
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	var q historyQuery
	q.limit, _ = cmd.Flags().GetInt("limit")
	q.all, _ = cmd.Flags().GetBool("all")
	q.since, _ = cmd.Flags().GetDuration("since")
	q.run, _ = cmd.Flags().GetInt64("run")
	prune, _ := cmd.Flags().GetDuration("prune")

	if !cfg.History.Enabled {
		return errors.New("history is disabled in the configuration")
	}
	db, err := openHistory(cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	log := events.NewEventLog(db)

	if prune > 0 {
		n, err := log.Prune(cmd.Context(), prune)
		if err != nil {
			return fmt.Errorf("prune history: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries\n", n)
		return nil
	}

	now := time.Now()
	raw, err := queryHistory(cmd.Context(), log, q, now)
	if err != nil {
		return err
	}
	printHistory(cmd.OutOrStdout(), raw, now)
	return nil
}

// queryHistory selects the events to list. A run shows every event of that
// run; otherwise only outcomes are listed unless all is set.
func queryHistory(ctx context.Context, log *events.EventLog, q historyQuery, now time.Time) ([]events.RawEvent, error) {
	if q.run != 0 {
		for _, entity := range []string{events.EntityMerge, events.EntitySlideshow} {
			raw, err := log.ForEntity(ctx, entity, q.run)
			if err != nil {
				return nil, fmt.Errorf("read history: %w", err)
			}
			if len(raw) > 0 {
				return raw, nil
			}
		}
		return nil, fmt.Errorf("no run %d in history", q.run)
	}

	if q.since > 0 {
		raw, err := log.Since(ctx, now.Add(-q.since))
		if err != nil {
			return nil, fmt.Errorf("read history: %w", err)
		}
		if !q.all {
			raw = slices.DeleteFunc(raw, func(r events.RawEvent) bool {
				return !slices.Contains(outcomeEvents, r.EventType)
			})
		}
		return raw, nil
	}

	types := outcomeEvents
	if q.all {
		types = nil
	}
	raw, err := log.Recent(ctx, q.limit, types...)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return raw, nil
}

func printHistory(w io.Writer, raw []events.RawEvent, now time.Time) {
	if len(raw) == 0 {
		fmt.Fprintln(w, "No history")
		return
	}

	registry := events.DefaultRegistry()
	fmt.Fprintf(w, "  %-10s %-18s %-20s %s\n", "WHEN", "RUN", "EVENT", "DETAILS")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 78))
	for _, r := range raw {
		details := "(unreadable)"
		if e, err := registry.Unmarshal(r); err == nil {
			details = describeEvent(e)
		}
		fmt.Fprintf(w, "  %-10s %-18d %-20s %s\n", formatTimeAgo(r.OccurredAt, now), r.EntityID, r.EventType, details)
	}
}

func describeEvent(e events.Event) string {
	switch e := e.(type) {
	case *events.MergeStarted:
		return fmt.Sprintf("%s from %s", filepath.Base(e.Output), plural(len(e.Sources), "file"))
	case *events.FileMerged:
		return fmt.Sprintf("[%d/%d] %s (%s)", e.Index, e.Total, filepath.Base(e.Path), plural(e.Slides, "slide"))
	case *events.MergeCompleted:
		return fmt.Sprintf("%s: %s, %s in %s", filepath.Base(e.Output),
			plural(e.Files, "file"), plural(e.Slides, "slide"), time.Duration(e.DurationMS)*time.Millisecond)
	case *events.MergeFailed:
		if e.Source != "" {
			return fmt.Sprintf("%s at %s (%s): %s", e.Stage, filepath.Base(e.Source), filepath.Base(e.Output), e.Reason)
		}
		return fmt.Sprintf("%s: %s", e.Stage, e.Reason)
	case *events.SlideshowStarted:
		return filepath.Base(e.Path)
	case *events.SlideshowFailed:
		return fmt.Sprintf("%s: %s", filepath.Base(e.Path), e.Reason)
	default:
		return ""
	}
}

// formatTimeAgo renders t relative to now.
func formatTimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}

	ago := now.Sub(t)
	switch {
	case ago < time.Minute:
		return "just now"
	case ago < time.Hour:
		return fmt.Sprintf("%dm ago", int(ago.Minutes()))
	case ago < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(ago.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(ago.Hours()/24))
	}
}
