package ooxml

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

const contentTypesName = "[Content_Types].xml"

// pkg is an Office Open XML package held in memory.
// Part names carry no leading slash (e.g. "ppt/slides/slide1.xml").
type pkg struct {
	parts map[string][]byte
	order []string // zip entry order, new parts appended
	types *contentTypes

	mainPart string // usually "ppt/presentation.xml"
	pres     *presentationDoc

	counters map[string]int // fresh-name counters keyed by dir+stem+ext
}

func readPackage(filename string) (*pkg, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPresentation, err)
	}
	defer func() { _ = zr.Close() }()

	p := &pkg{
		parts:    make(map[string][]byte, len(zr.File)),
		counters: make(map[string]int),
	}

	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		data, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		if f.Name == contentTypesName {
			types, err := parseContentTypes(data)
			if err != nil {
				return nil, err
			}
			p.types = types
			continue
		}
		p.parts[f.Name] = data
		p.order = append(p.order, f.Name)
	}

	if p.types == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrNotPresentation, contentTypesName)
	}

	if err := p.locateMainPart(); err != nil {
		return nil, err
	}
	return p, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

// locateMainPart follows the package relationships to the presentation part.
func (p *pkg) locateMainPart() error {
	rels, err := p.rels("")
	if err != nil {
		return err
	}
	for _, r := range rels.Items {
		if isRelType(r.Type, relOfficeDocument) {
			p.mainPart = resolveTarget("", r.Target)
			break
		}
	}
	if p.mainPart == "" {
		return fmt.Errorf("%w: no main document relationship", ErrNotPresentation)
	}
	data, ok := p.parts[p.mainPart]
	if !ok {
		return fmt.Errorf("%w: missing %s", ErrNotPresentation, p.mainPart)
	}
	pres, err := parsePresentation(data)
	if err != nil {
		return err
	}
	p.pres = pres
	return nil
}

// clone returns a deep copy of the package.
func (p *pkg) clone() *pkg {
	c := &pkg{
		parts:    make(map[string][]byte, len(p.parts)),
		order:    append([]string(nil), p.order...),
		types:    p.types.clone(),
		mainPart: p.mainPart,
		counters: make(map[string]int),
	}
	for name, data := range p.parts {
		c.parts[name] = bytes.Clone(data)
	}
	c.pres = p.pres.clone()
	return c
}

func (p *pkg) put(name string, data []byte) {
	if _, ok := p.parts[name]; !ok {
		p.order = append(p.order, name)
	}
	p.parts[name] = data
}

func (p *pkg) remove(name string) {
	delete(p.parts, name)
	delete(p.parts, relsName(name))
	p.types.removeOverride(name)
}

// rels returns the relationships of a part. A part without a rels file
// has an empty set.
func (p *pkg) rels(part string) (*relationships, error) {
	data, ok := p.parts[relsName(part)]
	if !ok {
		return &relationships{}, nil
	}
	return parseRelationships(data)
}

func (p *pkg) putRels(part string, rels *relationships) error {
	data, err := rels.marshal()
	if err != nil {
		return err
	}
	p.put(relsName(part), data)
	return nil
}

// freshName returns an unused part name shaped like name: same directory,
// stem and extension, with the next free number.
func (p *pkg) freshName(name string) string {
	dir, base := path.Split(name)
	ext := path.Ext(base)
	stem := strings.TrimRight(strings.TrimSuffix(base, ext), "0123456789")
	key := dir + stem + ext

	n := p.counters[key]
	for {
		n++
		candidate := dir + stem + strconv.Itoa(n) + ext
		if _, taken := p.parts[candidate]; !taken {
			p.counters[key] = n
			return candidate
		}
	}
}

// slideParts returns the slide part names in presentation order.
func (p *pkg) slideParts() ([]string, error) {
	rels, err := p.rels(p.mainPart)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(p.pres.slides))
	for _, s := range p.pres.slides {
		r := rels.byID(s.rid)
		if r == nil {
			return nil, fmt.Errorf("%w: slide relationship %s not found", ErrCorruptPackage, s.rid)
		}
		names = append(names, resolveTarget(p.mainPart, r.Target))
	}
	return names, nil
}

// notesMaster returns the notes master part, or "" if the package has none.
func (p *pkg) notesMaster() string {
	if len(p.pres.notesMasters) == 0 {
		return ""
	}
	rels, err := p.rels(p.mainPart)
	if err != nil {
		return ""
	}
	r := rels.byID(p.pres.notesMasters[0].rid)
	if r == nil {
		return ""
	}
	return resolveTarget(p.mainPart, r.Target)
}

// write serialises the package to w with the content types part first.
func (p *pkg) write(w io.Writer) error {
	p.put(p.mainPart, p.pres.raw)

	zw := zip.NewWriter(w)

	types, err := p.types.marshal()
	if err != nil {
		return err
	}
	if err := writeZipFile(zw, contentTypesName, types); err != nil {
		return err
	}

	seen := make(map[string]bool, len(p.order))
	for _, name := range p.order {
		data, ok := p.parts[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		if err := writeZipFile(zw, name, data); err != nil {
			return err
		}
	}
	return zw.Close()
}

func writeZipFile(zw *zip.Writer, name string, data []byte) error {
	fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// saveFile writes the package to filename through a temp file in the same
// directory, so a failed save leaves no partial output.
func (p *pkg) saveFile(filename string) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, ".slidemerge-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp: %v", ErrSaveFailed, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if err := p.write(tmp); err != nil {
		cleanup()
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("%w: sync: %v", ErrSaveFailed, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: close: %v", ErrSaveFailed, err)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: rename: %v", ErrSaveFailed, err)
	}
	return nil
}
