package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/slidemerge/internal/batch"
	"github.com/vmunix/slidemerge/internal/events"
	"github.com/vmunix/slidemerge/internal/host/ooxml/ooxmltest"
	"github.com/vmunix/slidemerge/internal/merge"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 file", plural(1, "file"))
	assert.Equal(t, "0 slides", plural(0, "slide"))
	assert.Equal(t, "3 presentations", plural(3, "presentation"))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCollectSources(t *testing.T) {
	dir := t.TempDir()
	a := ooxmltest.WriteDeck(t, dir, "a.pptx", ooxmltest.Deck{Labels: []string{"a1"}})
	b := ooxmltest.WriteDeck(t, dir, "b.pptx", ooxmltest.Deck{Labels: []string{"b1"}})
	notes := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("x"), 0o644))

	var warnings bytes.Buffer
	sources, err := collectSources(&warnings, []string{b, a, notes, b}, 2)

	require.NoError(t, err)
	assert.Equal(t, []string{b, a}, sources)
	assert.Contains(t, warnings.String(), "skipping "+notes+": invalid type")
	assert.Contains(t, warnings.String(), "skipping "+b+": duplicate")
}

func TestCollectSources_SuggestsNearMiss(t *testing.T) {
	dir := t.TempDir()
	quarterly := ooxmltest.WriteDeck(t, dir, "quarterly.pptx", ooxmltest.Deck{Labels: []string{"q1"}})
	typo := filepath.Join(dir, "quartely.pptx")
	gone := filepath.Join(dir, "budget.pptx")

	var warnings bytes.Buffer
	_, err := collectSources(&warnings, []string{typo, gone, quarterly}, 1)

	require.NoError(t, err)
	assert.Contains(t, warnings.String(), "skipping "+typo+": missing (did you mean "+quarterly+"?)")
	assert.Contains(t, warnings.String(), "skipping "+gone+": missing\n")
}

func TestCollectSources_MinSources(t *testing.T) {
	dir := t.TempDir()
	a := ooxmltest.WriteDeck(t, dir, "a.pptx", ooxmltest.Deck{Labels: []string{"a1"}})

	_, err := collectSources(&bytes.Buffer{}, []string{a, a}, 2)
	assert.ErrorContains(t, err, "need at least 2 presentations to merge, have 1")

	_, err = collectSources(&bytes.Buffer{}, []string{filepath.Join(dir, "gone.pptx")}, 0)
	assert.ErrorContains(t, err, "need at least 1 presentation")
}

func TestProgressPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := progressPrinter(&buf)
	p("a.pptx", 1, 12)
	p("b.pptx", 12, 12)
	assert.Equal(t, "[ 1/12] a.pptx\n[12/12] b.pptx\n", buf.String())
}

func TestPrintFileSummary(t *testing.T) {
	bus := events.NewBus(nil, testLogger())
	defer bus.Close()
	merged := bus.Subscribe(events.EventFileMerged, 4)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, &events.FileMerged{
		BaseEvent: events.NewBaseEvent(events.EventFileMerged, events.EntityMerge, 1),
		Path:      "/d/intro.pptx", Index: 1, Total: 2, Slides: 1,
	}))
	require.NoError(t, bus.Publish(ctx, &events.FileMerged{
		BaseEvent: events.NewBaseEvent(events.EventFileMerged, events.EntityMerge, 1),
		Path:      "/d/sales.pptx", Index: 2, Total: 2, Slides: 7,
	}))
	bus.Unsubscribe(merged)

	var buf bytes.Buffer
	printFileSummary(&buf, merged)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Regexp(t, `^  intro\.pptx +1 slide$`, lines[0])
	assert.Regexp(t, `^  sales\.pptx +7 slides$`, lines[1])
}

func TestFolderOpener(t *testing.T) {
	assert.Equal(t, []string{"explorer"}, folderOpener("windows"))
	assert.Equal(t, []string{"open"}, folderOpener("darwin"))
	assert.Equal(t, []string{"xdg-open"}, folderOpener("linux"))
}

func TestQueryHistory(t *testing.T) {
	db, err := openHistory(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	log := events.NewEventLog(db)
	bus := events.NewBus(log, testLogger())
	defer bus.Close()

	ctx := context.Background()
	for _, e := range []events.Event{
		&events.MergeStarted{BaseEvent: events.NewBaseEvent(events.EventMergeStarted, events.EntityMerge, 7)},
		&events.FileMerged{BaseEvent: events.NewBaseEvent(events.EventFileMerged, events.EntityMerge, 7)},
		&events.MergeCompleted{BaseEvent: events.NewBaseEvent(events.EventMergeCompleted, events.EntityMerge, 7)},
		&events.SlideshowStarted{BaseEvent: events.NewBaseEvent(events.EventSlideshowStarted, events.EntitySlideshow, 8)},
	} {
		require.NoError(t, bus.Publish(ctx, e))
	}
	now := time.Now().Add(time.Minute)

	typesOf := func(raw []events.RawEvent) []string {
		var types []string
		for _, r := range raw {
			types = append(types, r.EventType)
		}
		return types
	}

	tests := []struct {
		name string
		q    historyQuery
		want []string
	}{
		{"outcomes", historyQuery{limit: 20},
			[]string{events.EventSlideshowStarted, events.EventMergeCompleted}},
		{"all", historyQuery{limit: 2, all: true},
			[]string{events.EventSlideshowStarted, events.EventMergeCompleted}},
		{"since outcomes", historyQuery{since: time.Hour},
			[]string{events.EventMergeCompleted, events.EventSlideshowStarted}},
		{"since all", historyQuery{since: time.Hour, all: true},
			[]string{events.EventMergeStarted, events.EventFileMerged, events.EventMergeCompleted, events.EventSlideshowStarted}},
		{"merge run", historyQuery{run: 7},
			[]string{events.EventMergeStarted, events.EventFileMerged, events.EventMergeCompleted}},
		{"slideshow run", historyQuery{run: 8},
			[]string{events.EventSlideshowStarted}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := queryHistory(ctx, log, tt.q, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, typesOf(raw))
		})
	}

	_, err = queryHistory(ctx, log, historyQuery{run: 99}, now)
	assert.ErrorContains(t, err, "no run 99 in history")
}

func TestCheckConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("valid", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, checkConfig(&out, write("ok.toml", "[merge]\nprogress = \"slide\"\n")))
		assert.Contains(t, out.String(), "Progress:   per slide")
		assert.Contains(t, out.String(), "Configuration valid!")
	})

	t.Run("syntax", func(t *testing.T) {
		var out bytes.Buffer
		err := checkConfig(&out, write("syntax.toml", "[merge\n"))
		assert.EqualError(t, err, "configuration unreadable")
		assert.Contains(t, out.String(), "Syntax error:")
		assert.NotContains(t, out.String(), "Validation errors:")
	})

	t.Run("invalid values", func(t *testing.T) {
		var out bytes.Buffer
		err := checkConfig(&out, write("bad.toml", "[merge]\nprogress = \"page\"\n"))
		assert.EqualError(t, err, "configuration invalid")
		assert.Contains(t, out.String(), "Validation errors:")
		assert.Contains(t, out.String(), "merge.progress")
		assert.NotContains(t, out.String(), "Syntax error:")
	})

	t.Run("missing env", func(t *testing.T) {
		var out bytes.Buffer
		err := checkConfig(&out, write("env.toml", "[history]\npath = \"${SLIDEMERGE_TEST_UNSET_98765}/h.db\"\n"))
		assert.EqualError(t, err, "configuration invalid")
		assert.Contains(t, out.String(), "Missing environment variables:")
		assert.Contains(t, out.String(), "SLIDEMERGE_TEST_UNSET_98765")
	})

	t.Run("missing file", func(t *testing.T) {
		err := checkConfig(&bytes.Buffer{}, filepath.Join(dir, "gone.toml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{50 * time.Hour, "2d ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatTimeAgo(now.Add(-tt.ago), now))
	}
	assert.Equal(t, "never", formatTimeAgo(time.Time{}, now))
}

func TestDescribeEvent(t *testing.T) {
	assert.Equal(t, "out.pptx: 2 files, 5 slides in 1.5s", describeEvent(&events.MergeCompleted{
		Output: "/d/out.pptx", Files: 2, Slides: 5, DurationMS: 1500,
	}))
	assert.Equal(t, "append at b.pptx (out.pptx): locked", describeEvent(&events.MergeFailed{
		Output: "/d/out.pptx", Source: "/d/b.pptx", Stage: "append", Reason: "locked",
	}))
	assert.Equal(t, "validate: no source files", describeEvent(&events.MergeFailed{
		Stage: "validate", Reason: "no source files",
	}))
	assert.Equal(t, "[1/2] a.pptx (1 slide)", describeEvent(&events.FileMerged{
		Path: "/d/a.pptx", Index: 1, Total: 2, Slides: 1,
	}))
}

func TestPrintHistory_Empty(t *testing.T) {
	var buf bytes.Buffer
	printHistory(&buf, nil, time.Now())
	assert.Equal(t, "No history\n", buf.String())
}

func TestPrintJobResults(t *testing.T) {
	var buf bytes.Buffer
	printJobResults(&buf, []batch.JobResult{
		{Job: batch.Job{Name: "good"}, Result: merge.Result{Success: true, OutputPath: "/d/good.pptx", Slides: 4}},
		{Job: batch.Job{Name: "bad"}, Result: merge.Result{Err: errors.New("boom")}},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ok    good"), lines[0])
	assert.Contains(t, lines[0], "good.pptx (4 slides)")
	assert.True(t, strings.HasPrefix(lines[1], "FAIL  bad"), lines[1])
	assert.Contains(t, lines[1], "boom")
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("SLIDEMERGE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	c, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "file", c.Merge.Progress)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[merge]\nprogress = \"page\"\n"), 0o644))

	_, err := loadConfig(path)
	assert.ErrorContains(t, err, "merge.progress")
}

// TestMergeAndHistory drives the CLI end to end with the native host.
func TestMergeAndHistory(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "slidemerge.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"[history]\npath = '"+filepath.Join(dir, "history.db")+"'\n"), 0o644))

	a := ooxmltest.WriteDeck(t, dir, "a.pptx", ooxmltest.Deck{Labels: []string{"a1", "a2"}})
	b := ooxmltest.WriteDeck(t, dir, "b.pptx", ooxmltest.Deck{Labels: []string{"b1", "b2", "b3"}})
	out := filepath.Join(dir, "out")

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs([]string{"--config", cfgPath, "merge", "-o", out, a, b})
	require.NoError(t, rootCmd.Execute(), stderr.String())

	assert.Contains(t, stdout.String(), "Merged 2 files (5 slides) into "+out+".pptx")
	assert.Contains(t, stderr.String(), "[1/2] a.pptx")
	assert.Contains(t, stderr.String(), "[2/2] b.pptx")
	assert.Equal(t, []string{"a1", "a2", "b1", "b2", "b3"}, ooxmltest.Labels(t, out+".pptx"))
	assert.Regexp(t, `(?m)^  a\.pptx +2 slides$`, stdout.String())
	assert.Regexp(t, `(?m)^  b\.pptx +3 slides$`, stdout.String())

	stdout.Reset()
	rootCmd.SetArgs([]string{"--config", cfgPath, "history"})
	require.NoError(t, rootCmd.Execute(), stderr.String())
	assert.Contains(t, stdout.String(), "merge.completed")
	assert.Contains(t, stdout.String(), "out.pptx: 2 files, 5 slides")
}

func TestVersionCommand(t *testing.T) {
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "slidemerge dev\n", stdout.String())
}
