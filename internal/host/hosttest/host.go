// Package hosttest provides a fake presentation host backed by plain text
// decks: one slide label per line.
package hosttest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vmunix/slidemerge/internal/host"
)

// ErrInjected is returned by operations configured to fail.
var ErrInjected = errors.New("hosttest: injected failure")

// Host is a fake host.Host. Configure the exported fields before use.
type Host struct {
	// Running reports whether Attach succeeds without a Launch.
	Running bool
	// StarterSlides seeds every new presentation.
	StarterSlides []string

	AttachErr error
	LaunchErr error
	QuitErr   error
	SaveErr   error
	CloseErr  error
	ShowErr   error

	// FailOpen fails Open for files with the given base name.
	FailOpen map[string]error
	// FailCopy fails copying the slide at the given index from files with
	// the given base name.
	FailCopy map[string]int

	mu        sync.Mutex
	calls     []string
	open      map[*Presentation]struct{}
	maxSource int
	shows     []string
}

var _ host.Host = (*Host)(nil)

// New returns a fake host that is not yet running.
func New() *Host {
	return &Host{open: make(map[*Presentation]struct{})}
}

func (h *Host) record(format string, args ...any) {
	h.mu.Lock()
	h.calls = append(h.calls, fmt.Sprintf(format, args...))
	h.mu.Unlock()
}

// Calls returns every host and presentation call in order.
func (h *Host) Calls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.calls...)
}

// Contacts counts calls made to the host.
func (h *Host) Contacts() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.calls)
}

// OpenCount returns the presentations not yet closed.
func (h *Host) OpenCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.open)
}

// MaxOpenSources is the most read-only presentations ever open at once.
func (h *Host) MaxOpenSources() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxSource
}

// Shows lists the paths slideshows were started for.
func (h *Host) Shows() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.shows...)
}

func (h *Host) Attach(ctx context.Context) error {
	h.record("attach")
	if err := ctx.Err(); err != nil {
		return err
	}
	if h.AttachErr != nil {
		return h.AttachErr
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.Running {
		return host.ErrNotRunning
	}
	return nil
}

func (h *Host) Launch(ctx context.Context) error {
	h.record("launch")
	if err := ctx.Err(); err != nil {
		return err
	}
	if h.LaunchErr != nil {
		return h.LaunchErr
	}
	h.mu.Lock()
	h.Running = true
	h.mu.Unlock()
	return nil
}

func (h *Host) NewPresentation(ctx context.Context) (host.Presentation, error) {
	h.record("new")
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := &Presentation{host: h, slides: append([]string(nil), h.StarterSlides...)}
	h.track(p)
	return p, nil
}

func (h *Host) Open(ctx context.Context, path string, mode host.OpenMode) (host.Presentation, error) {
	h.record("open %s", filepath.Base(path))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := h.FailOpen[filepath.Base(path)]; ok {
		return nil, err
	}
	slides, err := readDeck(path)
	if err != nil {
		return nil, err
	}
	p := &Presentation{host: h, path: path, mode: mode, slides: slides}
	h.track(p)
	return p, nil
}

func (h *Host) Quit(ctx context.Context) error {
	h.record("quit")
	h.mu.Lock()
	h.Running = false
	for p := range h.open {
		p.closed = true
	}
	h.open = make(map[*Presentation]struct{})
	h.mu.Unlock()
	return h.QuitErr
}

func (h *Host) track(p *Presentation) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.open[p] = struct{}{}
	sources := 0
	for q := range h.open {
		if q.mode.ReadOnly {
			sources++
		}
	}
	if sources > h.maxSource {
		h.maxSource = sources
	}
}

// Presentation is a fake host.Presentation.
type Presentation struct {
	host   *Host
	path   string
	mode   host.OpenMode
	slides []string
	closed bool
}

var _ host.Presentation = (*Presentation)(nil)

func (p *Presentation) Path() string { return p.path }

// Slides returns the current slide labels.
func (p *Presentation) Slides() []string { return append([]string(nil), p.slides...) }

func (p *Presentation) SlideCount(ctx context.Context) (int, error) {
	if err := p.usable(ctx); err != nil {
		return 0, err
	}
	return len(p.slides), nil
}

func (p *Presentation) DeleteSlide(ctx context.Context, index int) error {
	p.host.record("delete %d", index)
	if err := p.usable(ctx); err != nil {
		return err
	}
	if p.mode.ReadOnly {
		return host.ErrReadOnly
	}
	if index < 0 || index >= len(p.slides) {
		return fmt.Errorf("%w: %d", host.ErrSlideIndex, index)
	}
	p.slides = append(p.slides[:index], p.slides[index+1:]...)
	return nil
}

func (p *Presentation) CopySlideFrom(ctx context.Context, src host.Presentation, index int) error {
	p.host.record("copy %s#%d", filepath.Base(src.Path()), index)
	if err := p.usable(ctx); err != nil {
		return err
	}
	if p.mode.ReadOnly {
		return host.ErrReadOnly
	}
	source, ok := src.(*Presentation)
	if !ok || source.host != p.host {
		return host.ErrForeignPresentation
	}
	if source.closed {
		return host.ErrClosed
	}
	if at, ok := p.host.FailCopy[filepath.Base(source.path)]; ok && at == index {
		return fmt.Errorf("%w: copy slide %d", ErrInjected, index)
	}
	if index < 0 || index >= len(source.slides) {
		return fmt.Errorf("%w: %d", host.ErrSlideIndex, index)
	}
	p.slides = append(p.slides, source.slides[index])
	return nil
}

func (p *Presentation) SaveAs(ctx context.Context, path string) error {
	p.host.record("save %s", filepath.Base(path))
	if err := p.usable(ctx); err != nil {
		return err
	}
	if p.mode.ReadOnly {
		return host.ErrReadOnly
	}
	if p.host.SaveErr != nil {
		return p.host.SaveErr
	}
	if err := os.WriteFile(path, []byte(strings.Join(p.slides, "\n")), 0o644); err != nil {
		return err
	}
	p.path = path
	return nil
}

func (p *Presentation) StartSlideShow(ctx context.Context) error {
	p.host.record("show %s", filepath.Base(p.path))
	if err := p.usable(ctx); err != nil {
		return err
	}
	if p.host.ShowErr != nil {
		return p.host.ShowErr
	}
	p.host.mu.Lock()
	p.host.shows = append(p.host.shows, p.path)
	p.host.mu.Unlock()
	return nil
}

func (p *Presentation) Close(_ context.Context) error {
	name := filepath.Base(p.path)
	if p.path == "" {
		name = "(new)"
	}
	p.host.record("close %s", name)
	if p.closed {
		return nil
	}
	p.closed = true
	p.host.mu.Lock()
	delete(p.host.open, p)
	p.host.mu.Unlock()
	return p.host.CloseErr
}

func (p *Presentation) usable(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.closed {
		return host.ErrClosed
	}
	return nil
}

func readDeck(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

// WriteDeck writes a deck named name into dir and returns its path.
func WriteDeck(t testing.TB, dir, name string, slides ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(strings.Join(slides, "\n")), 0o644)
	require.NoError(t, err, "write deck %s", name)
	return path
}

// ReadDeck returns the slide labels of the deck at path.
func ReadDeck(t testing.TB, path string) []string {
	t.Helper()
	slides, err := readDeck(path)
	require.NoError(t, err, "read deck %s", path)
	return slides
}
