// Package ooxml is an in-process presentation host that edits Office Open
// XML packages directly, with no office application installed.
package ooxml

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vmunix/slidemerge/internal/host"
)

// Config for the native host.
type Config struct {
	// Viewer is the command used to play a slideshow. "{path}" is replaced
	// with the presentation path; without it the path is appended.
	// Empty selects a per-platform default.
	Viewer []string
}

// Host implements host.Host on top of zip packages.
type Host struct {
	mu      sync.Mutex
	running bool
	open    map[*Presentation]struct{}
	viewer  []string
	log     *slog.Logger
}

var _ host.Host = (*Host)(nil)

// New creates a native host. It must be launched before it can be attached to.
func New(cfg Config, log *slog.Logger) *Host {
	if log == nil {
		log = slog.Default()
	}
	viewer := cfg.Viewer
	if len(viewer) == 0 {
		viewer = DefaultViewer()
	}
	return &Host{
		open:   make(map[*Presentation]struct{}),
		viewer: viewer,
		log:    log,
	}
}

// Attach succeeds once the host has been launched and not quit since.
func (h *Host) Attach(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.running {
		return host.ErrNotRunning
	}
	return nil
}

func (h *Host) Launch(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	h.running = true
	h.mu.Unlock()
	h.log.Debug("native host started")
	return nil
}

// NewPresentation returns an empty presentation with no starter slide.
// It takes its design from the first slide copied into it.
func (h *Host) NewPresentation(ctx context.Context) (host.Presentation, error) {
	if err := h.ready(ctx); err != nil {
		return nil, err
	}
	p := &Presentation{host: h, importers: make(map[*Presentation]*slideImporter)}
	h.track(p)
	return p, nil
}

func (h *Host) Open(ctx context.Context, path string, mode host.OpenMode) (host.Presentation, error) {
	if err := h.ready(ctx); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	pk, err := readPackage(abs)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(abs), err)
	}
	p := &Presentation{
		host:      h,
		path:      abs,
		mode:      mode,
		pkg:       pk,
		importers: make(map[*Presentation]*slideImporter),
	}
	h.track(p)
	h.log.Debug("presentation opened", "path", abs, "slides", len(pk.pres.slides), "read_only", mode.ReadOnly)
	return p, nil
}

// Quit closes every open presentation and stops the host.
func (h *Host) Quit(ctx context.Context) error {
	h.mu.Lock()
	open := make([]*Presentation, 0, len(h.open))
	for p := range h.open {
		open = append(open, p)
	}
	h.mu.Unlock()

	for _, p := range open {
		_ = p.Close(ctx)
	}

	h.mu.Lock()
	h.running = false
	h.mu.Unlock()
	h.log.Debug("native host stopped", "closed", len(open))
	return nil
}

// OpenCount returns the number of presentations not yet closed.
func (h *Host) OpenCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.open)
}

func (h *Host) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.running {
		return host.ErrNotRunning
	}
	return nil
}

func (h *Host) track(p *Presentation) {
	h.mu.Lock()
	h.open[p] = struct{}{}
	h.mu.Unlock()
}

func (h *Host) untrack(p *Presentation) {
	h.mu.Lock()
	delete(h.open, p)
	h.mu.Unlock()
}

// Presentation is a package held open by a native Host.
// A Presentation is not safe for concurrent use.
type Presentation struct {
	host   *Host
	path   string
	mode   host.OpenMode
	pkg    *pkg // nil until the first slide arrives in a new presentation
	closed bool

	importers map[*Presentation]*slideImporter
}

var _ host.Presentation = (*Presentation)(nil)

func (p *Presentation) Path() string { return p.path }

func (p *Presentation) SlideCount(ctx context.Context) (int, error) {
	if err := p.usable(ctx); err != nil {
		return 0, err
	}
	if p.pkg == nil {
		return 0, nil
	}
	return len(p.pkg.pres.slides), nil
}

// DeleteSlide removes the slide at index along with its notes.
func (p *Presentation) DeleteSlide(ctx context.Context, index int) error {
	if err := p.writable(ctx); err != nil {
		return err
	}
	if p.pkg == nil || index < 0 || index >= len(p.pkg.pres.slides) {
		return fmt.Errorf("%w: %d", host.ErrSlideIndex, index)
	}

	slides, err := p.pkg.slideParts()
	if err != nil {
		return err
	}
	name := slides[index]
	rid := p.pkg.pres.slides[index].rid

	if err := p.pkg.pres.removeSlide(rid); err != nil {
		return err
	}
	rels, err := p.pkg.rels(p.pkg.mainPart)
	if err != nil {
		return err
	}
	rels.removeID(rid)
	if err := p.pkg.putRels(p.pkg.mainPart, rels); err != nil {
		return err
	}
	if err := p.pkg.removeSlidePart(name); err != nil {
		return err
	}
	for _, imp := range p.importers {
		imp.forget(name)
	}
	return nil
}

// CopySlideFrom appends slide index of src. The first slide copied into a
// new presentation brings the source's masters, theme and slide size.
func (p *Presentation) CopySlideFrom(ctx context.Context, src host.Presentation, index int) error {
	if err := p.writable(ctx); err != nil {
		return err
	}
	source, ok := src.(*Presentation)
	if !ok || source.host != p.host {
		return host.ErrForeignPresentation
	}
	if err := source.usable(ctx); err != nil {
		return err
	}
	if source.pkg == nil {
		return fmt.Errorf("%w: %d", host.ErrSlideIndex, index)
	}

	slides, err := source.pkg.slideParts()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(slides) {
		return fmt.Errorf("%w: %d", host.ErrSlideIndex, index)
	}

	imp, err := p.importerFor(source)
	if err != nil {
		return err
	}
	if err := imp.importSlide(slides[index]); err != nil {
		return fmt.Errorf("copy slide %d of %s: %w", index+1, filepath.Base(source.path), err)
	}
	return nil
}

func (p *Presentation) importerFor(src *Presentation) (*slideImporter, error) {
	if imp, ok := p.importers[src]; ok {
		return imp, nil
	}
	if p.pkg == nil {
		dst, imp, err := adoptPackage(src.pkg)
		if err != nil {
			return nil, err
		}
		p.pkg = dst
		p.importers[src] = imp
		return imp, nil
	}
	imp := newSlideImporter(p.pkg, src.pkg)
	p.importers[src] = imp
	return imp, nil
}

// SaveAs writes the presentation. The main content type follows the
// extension: .ppsx saves a slideshow, anything else a presentation.
// A presentation that never received a slide is saved blank.
func (p *Presentation) SaveAs(ctx context.Context, path string) error {
	if err := p.writable(ctx); err != nil {
		return err
	}
	if p.pkg == nil {
		blank, err := blankPackage()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSaveFailed, err)
		}
		p.pkg = blank
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: resolve %s: %v", ErrSaveFailed, path, err)
	}

	for _, imp := range p.importers {
		if err := imp.dropPending(); err != nil {
			return err
		}
	}

	mainType := ctPresentation
	if strings.EqualFold(filepath.Ext(abs), ".ppsx") {
		mainType = ctSlideshow
	}
	p.pkg.types.setOverride(p.pkg.mainPart, mainType)

	if err := p.pkg.saveFile(abs); err != nil {
		return err
	}
	p.path = abs
	p.host.log.Debug("presentation saved", "path", abs, "slides", len(p.pkg.pres.slides))
	return nil
}

// StartSlideShow hands the saved file to the configured viewer.
func (p *Presentation) StartSlideShow(ctx context.Context) error {
	if err := p.usable(ctx); err != nil {
		return err
	}
	if p.path == "" {
		return ErrNotSaved
	}
	return runViewer(p.host.viewer, p.path, p.host.log)
}

func (p *Presentation) Close(_ context.Context) error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.importers = nil
	p.host.untrack(p)
	return nil
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

func (p *Presentation) writable(ctx context.Context) error {
	if err := p.usable(ctx); err != nil {
		return err
	}
	if p.mode.ReadOnly {
		return host.ErrReadOnly
	}
	return nil
}
