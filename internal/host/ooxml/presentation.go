package ooxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

const (
	firstSlideID  uint64 = 256
	firstMasterID uint64 = 2147483648

	// sectionsExtURI identifies the PowerPoint 2010 sections extension.
	sectionsExtURI = "{521415D9-36F7-43E2-AB2F-B90AF26B5E84}"
)

var relNamespaces = map[string]bool{
	"http://schemas.openxmlformats.org/officeDocument/2006/relationships": true,
	"http://purl.oclc.org/ooxml/officeDocument/relationships":             true,
}

type idEntry struct {
	id  uint64
	rid string
}

// presentationDoc is the presentation part. Lists are read with a token
// scan and edited in place so unknown markup survives untouched.
type presentationDoc struct {
	raw []byte
	p   string // presentationml prefix, usually "p"
	r   string // relationships prefix, usually "r"

	masters      []idEntry
	notesMasters []idEntry
	slides       []idEntry
}

func parsePresentation(data []byte) (*presentationDoc, error) {
	d := &presentationDoc{raw: data}
	if err := d.scan(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *presentationDoc) clone() *presentationDoc {
	c := *d
	c.raw = bytes.Clone(d.raw)
	c.masters = append([]idEntry(nil), d.masters...)
	c.notesMasters = append([]idEntry(nil), d.notesMasters...)
	c.slides = append([]idEntry(nil), d.slides...)
	return &c
}

func (d *presentationDoc) scan() error {
	d.masters, d.notesMasters, d.slides = nil, nil, nil

	dec := xml.NewDecoder(bytes.NewReader(d.raw))
	root := true
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: presentation: %v", ErrCorruptPackage, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if root {
			root = false
			if se.Name.Local != "presentation" {
				return fmt.Errorf("%w: unexpected root element %q", ErrCorruptPackage, se.Name.Local)
			}
			d.p = se.Name.Space
			for _, a := range se.Attr {
				if a.Name.Space == "xmlns" && relNamespaces[a.Value] {
					d.r = a.Name.Local
				}
			}
			if d.r == "" {
				return fmt.Errorf("%w: relationships namespace not declared", ErrCorruptPackage)
			}
			continue
		}

		if se.Name.Space != d.p {
			continue
		}
		switch se.Name.Local {
		case "sldMasterId":
			d.masters = append(d.masters, d.entry(se))
		case "notesMasterId":
			d.notesMasters = append(d.notesMasters, d.entry(se))
		case "sldId":
			d.slides = append(d.slides, d.entry(se))
		}
	}

	if root {
		return fmt.Errorf("%w: empty presentation part", ErrCorruptPackage)
	}
	return nil
}

func (d *presentationDoc) entry(se xml.StartElement) idEntry {
	var e idEntry
	for _, a := range se.Attr {
		switch {
		case a.Name.Space == "" && a.Name.Local == "id":
			e.id, _ = strconv.ParseUint(a.Value, 10, 64)
		case a.Name.Space == d.r && a.Name.Local == "id":
			e.rid = a.Value
		}
	}
	return e
}

// q qualifies a local name with the presentationml prefix.
func (d *presentationDoc) q(local string) string {
	if d.p == "" {
		return local
	}
	return d.p + ":" + local
}

func (d *presentationDoc) nextSlideID() uint64 {
	next := firstSlideID
	for _, s := range d.slides {
		if s.id >= next {
			next = s.id + 1
		}
	}
	return next
}

func (d *presentationDoc) appendSlide(id uint64, rid string) error {
	el := fmt.Sprintf(`<%s id="%d" %s:id="%s"/>`, d.q("sldId"), id, d.r, rid)
	return d.insertIntoList("sldIdLst", el, "sldSz", "notesSz")
}

func (d *presentationDoc) appendMaster(id uint64, rid string) error {
	el := fmt.Sprintf(`<%s id="%d" %s:id="%s"/>`, d.q("sldMasterId"), id, d.r, rid)
	return d.insertIntoList("sldMasterIdLst", el, "notesMasterIdLst", "handoutMasterIdLst", "sldIdLst", "sldSz", "notesSz")
}

func (d *presentationDoc) removeSlide(rid string) error {
	pattern := fmt.Sprintf(`(?s)<%s\s[^>]*?%s:id="%s"[^>]*?(?:/>|>.*?</%s>)`,
		regexp.QuoteMeta(d.q("sldId")), regexp.QuoteMeta(d.r), regexp.QuoteMeta(rid), regexp.QuoteMeta(d.q("sldId")))
	re := regexp.MustCompile(pattern)
	if !re.Match(d.raw) {
		return fmt.Errorf("%w: slide %s not listed", ErrCorruptPackage, rid)
	}
	d.raw = re.ReplaceAll(d.raw, nil)
	return d.scan()
}

// stripSlides empties the slide list and drops markup that refers to
// slides by id (custom shows, sections). It returns the removed
// relationship ids.
func (d *presentationDoc) stripSlides() ([]string, error) {
	rids := make([]string, 0, len(d.slides))
	for _, s := range d.slides {
		rids = append(rids, s.rid)
	}

	for _, local := range []string{"sldIdLst", "custShowLst"} {
		d.raw = d.elementPattern(local).ReplaceAll(d.raw, nil)
	}
	sections := regexp.MustCompile(fmt.Sprintf(`(?s)<%s\s+uri="%s"\s*>.*?</%s>`,
		regexp.QuoteMeta(d.q("ext")), regexp.QuoteMeta(sectionsExtURI), regexp.QuoteMeta(d.q("ext"))))
	d.raw = sections.ReplaceAll(d.raw, nil)

	return rids, d.scan()
}

// elementPattern matches a whole element (self-closing or not) by local name.
func (d *presentationDoc) elementPattern(local string) *regexp.Regexp {
	name := regexp.QuoteMeta(d.q(local))
	return regexp.MustCompile(fmt.Sprintf(`(?s)<%s\s*/>|<%s(?:\s[^>]*)?>.*?</%s>`, name, name, name))
}

func (d *presentationDoc) insertIntoList(list, el string, before ...string) error {
	name := d.q(list)

	closing := []byte("</" + name + ">")
	if i := bytes.Index(d.raw, closing); i >= 0 {
		d.raw = splice(d.raw, i, 0, []byte(el))
		return d.scan()
	}

	selfClosing := regexp.MustCompile(`<` + regexp.QuoteMeta(name) + `\s*/>`)
	if loc := selfClosing.FindIndex(d.raw); loc != nil {
		d.raw = splice(d.raw, loc[0], loc[1]-loc[0], []byte("<"+name+">"+el+"</"+name+">"))
		return d.scan()
	}

	for _, b := range before {
		re := regexp.MustCompile(`<` + regexp.QuoteMeta(d.q(b)) + `[\s/>]`)
		if loc := re.FindIndex(d.raw); loc != nil {
			d.raw = splice(d.raw, loc[0], 0, []byte("<"+name+">"+el+"</"+name+">"))
			return d.scan()
		}
	}
	return fmt.Errorf("%w: no place for %s", ErrCorruptPackage, list)
}

func splice(data []byte, at, remove int, insert []byte) []byte {
	out := make([]byte, 0, len(data)-remove+len(insert))
	out = append(out, data[:at]...)
	out = append(out, insert...)
	return append(out, data[at+remove:]...)
}

var layoutIDPattern = regexp.MustCompile(`(<(?:\w+:)?sldLayoutId\b[^>]*?\sid=")(\d+)(")`)

// layoutIDs returns the sldLayoutId values declared by a slide master.
func layoutIDs(master []byte) []uint64 {
	var ids []uint64
	for _, m := range layoutIDPattern.FindAllSubmatch(master, -1) {
		if id, err := strconv.ParseUint(string(m[2]), 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// renumberLayoutIDs rewrites every sldLayoutId in a slide master with ids
// drawn from next.
func renumberLayoutIDs(master []byte, next func() uint64) []byte {
	return layoutIDPattern.ReplaceAllFunc(master, func(m []byte) []byte {
		sub := layoutIDPattern.FindSubmatch(m)
		return []byte(string(sub[1]) + strconv.FormatUint(next(), 10) + string(sub[3]))
	})
}
