package ooxml

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	transitionalRels = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	ctSlideMasterTag = "slideMaster+xml"
)

// slideImporter copies slides from one source package into a destination
// package. Parts shared between slides (layouts, masters, themes, media)
// are copied once per source, and a master already present in the
// destination is not copied again.
type slideImporter struct {
	dst, src *pkg
	mapped   map[string]string // source part -> destination part
	reused   map[string]string // source master -> equal destination master, "" if none
	pending  []pendingLink
}

// pendingLink is a slide-to-slide relationship whose target slide has not
// been copied yet.
type pendingLink struct {
	part      string // destination part owning the relationship
	relID     string
	srcTarget string
}

func newSlideImporter(dst, src *pkg) *slideImporter {
	return &slideImporter{
		dst:    dst,
		src:    src,
		mapped: make(map[string]string),
		reused: make(map[string]string),
	}
}

// adoptPackage builds a destination package from src with every slide
// removed, keeping its masters, layouts, theme and slide size.
func adoptPackage(src *pkg) (*pkg, *slideImporter, error) {
	dst := src.clone()

	slides, err := dst.slideParts()
	if err != nil {
		return nil, nil, err
	}
	rids, err := dst.pres.stripSlides()
	if err != nil {
		return nil, nil, err
	}
	rels, err := dst.rels(dst.mainPart)
	if err != nil {
		return nil, nil, err
	}
	for _, rid := range rids {
		rels.removeID(rid)
	}
	if err := dst.putRels(dst.mainPart, rels); err != nil {
		return nil, nil, err
	}
	for _, s := range slides {
		if err := dst.removeSlidePart(s); err != nil {
			return nil, nil, err
		}
	}

	imp := newSlideImporter(dst, src)
	for name := range dst.parts {
		imp.mapped[name] = name
	}
	return dst, imp, nil
}

// removeSlidePart deletes a slide with its notes and comments.
func (p *pkg) removeSlidePart(slide string) error {
	rels, err := p.rels(slide)
	if err != nil {
		return err
	}
	for _, r := range rels.Items {
		if r.TargetMode == targetModeExternal {
			continue
		}
		if isRelType(r.Type, relNotesSlide) || isCommentRel(r.Type) {
			p.remove(resolveTarget(slide, r.Target))
		}
	}
	p.remove(slide)
	return nil
}

func isCommentRel(relType string) bool {
	return isRelType(relType, relComments) || isRelType(relType, relModernComment) || isRelType(relType, relCommentAuthors)
}

// importSlide appends a copy of srcSlide to the destination.
func (imp *slideImporter) importSlide(srcSlide string) error {
	// Each import is a new slide even if this source slide was copied before.
	delete(imp.mapped, srcSlide)

	dstSlide, err := imp.copyPart(srcSlide)
	if err != nil {
		return err
	}

	rels, err := imp.dst.rels(imp.dst.mainPart)
	if err != nil {
		return err
	}
	rid := rels.add(imp.relType(relSlide), relativeTarget(imp.dst.mainPart, dstSlide))
	if err := imp.dst.putRels(imp.dst.mainPart, rels); err != nil {
		return err
	}
	if err := imp.dst.pres.appendSlide(imp.dst.pres.nextSlideID(), rid); err != nil {
		return err
	}

	return imp.resolvePending(srcSlide, dstSlide)
}

// copyPart copies srcName and everything it references, returning the
// destination part name.
func (imp *slideImporter) copyPart(srcName string) (string, error) {
	if dstName, ok := imp.mapped[srcName]; ok {
		return dstName, nil
	}
	if dstName, ok, err := imp.reuseLayout(srcName); err != nil || ok {
		return dstName, err
	}
	data, ok := imp.src.parts[srcName]
	if !ok {
		return "", fmt.Errorf("%w: missing part %s", ErrCorruptPackage, srcName)
	}

	dstName := imp.dst.freshName(srcName)
	imp.mapped[srcName] = dstName
	imp.dst.put(dstName, nil)
	imp.dst.types.adopt(imp.src.types, srcName, dstName)

	if _, hasRels := imp.src.parts[relsName(srcName)]; hasRels {
		out, err := imp.copyRels(srcName, dstName)
		if err != nil {
			return "", err
		}
		if err := imp.dst.putRels(dstName, out); err != nil {
			return "", err
		}
	}

	data = bytes.Clone(data)
	if ct, _ := imp.dst.types.override(dstName); strings.HasSuffix(ct, ctSlideMasterTag) {
		registered, err := imp.registerMaster(dstName, data)
		if err != nil {
			return "", err
		}
		data = registered
	}
	imp.dst.put(dstName, data)
	return dstName, nil
}

func (imp *slideImporter) copyRels(srcName, dstName string) (*relationships, error) {
	rels, err := imp.src.rels(srcName)
	if err != nil {
		return nil, err
	}

	out := &relationships{}
	for _, r := range rels.Items {
		if r.TargetMode == targetModeExternal {
			out.Items = append(out.Items, r)
			continue
		}
		target := resolveTarget(srcName, r.Target)

		switch {
		case isCommentRel(r.Type):
			continue

		case isRelType(r.Type, relNotesMaster):
			nm := imp.dst.notesMaster()
			if nm == "" {
				continue
			}
			r.Target = relativeTarget(dstName, nm)

		case isRelType(r.Type, relNotesSlide):
			if imp.dst.notesMaster() == "" {
				continue
			}
			delete(imp.mapped, target)
			notes, err := imp.copyPart(target)
			if err != nil {
				return nil, err
			}
			r.Target = relativeTarget(dstName, notes)

		case isRelType(r.Type, relSlide):
			if slide, ok := imp.mapped[target]; ok {
				r.Target = relativeTarget(dstName, slide)
			} else {
				imp.pending = append(imp.pending, pendingLink{part: dstName, relID: r.ID, srcTarget: target})
			}

		default:
			copied, err := imp.copyPart(target)
			if err != nil {
				return nil, err
			}
			r.Target = relativeTarget(dstName, copied)
		}
		out.Items = append(out.Items, r)
	}
	return out, nil
}

// registerMaster lists a newly copied slide master in the presentation,
// giving it and its layouts ids unused in the destination.
func (imp *slideImporter) registerMaster(dstMaster string, data []byte) ([]byte, error) {
	id, err := imp.dst.nextMasterID()
	if err != nil {
		return nil, err
	}
	counter := id
	data = renumberLayoutIDs(data, func() uint64 {
		counter++
		return counter
	})

	rels, err := imp.dst.rels(imp.dst.mainPart)
	if err != nil {
		return nil, err
	}
	rid := rels.add(imp.relType(relSlideMaster), relativeTarget(imp.dst.mainPart, dstMaster))
	if err := imp.dst.putRels(imp.dst.mainPart, rels); err != nil {
		return nil, err
	}
	if err := imp.dst.pres.appendMaster(id, rid); err != nil {
		return nil, err
	}
	return data, nil
}

func (imp *slideImporter) resolvePending(srcSlide, dstSlide string) error {
	kept := imp.pending[:0]
	for _, link := range imp.pending {
		if link.srcTarget != srcSlide {
			kept = append(kept, link)
			continue
		}
		rels, err := imp.dst.rels(link.part)
		if err != nil {
			return err
		}
		if r := rels.byID(link.relID); r != nil {
			r.Target = relativeTarget(link.part, dstSlide)
		}
		if err := imp.dst.putRels(link.part, rels); err != nil {
			return err
		}
	}
	imp.pending = kept
	return nil
}

// dropPending removes links to slides that were never copied.
func (imp *slideImporter) dropPending() error {
	for _, link := range imp.pending {
		if _, ok := imp.dst.parts[link.part]; !ok {
			continue
		}
		rels, err := imp.dst.rels(link.part)
		if err != nil {
			return err
		}
		rels.removeID(link.relID)
		if err := imp.dst.putRels(link.part, rels); err != nil {
			return err
		}
	}
	imp.pending = nil
	return nil
}

// forget drops every mapping onto dstPart.
func (imp *slideImporter) forget(dstPart string) {
	for src, dst := range imp.mapped {
		if dst == dstPart {
			delete(imp.mapped, src)
		}
	}
}

// relType returns the full relationship type for name, preferring the
// namespace already used by the destination.
func (imp *slideImporter) relType(name string) string {
	for _, p := range []*pkg{imp.dst, imp.src} {
		rels, err := p.rels(p.mainPart)
		if err != nil {
			continue
		}
		if r := rels.firstOfType(name); r != nil {
			return r.Type
		}
	}
	return transitionalRels + name
}

// nextMasterID returns an id above every master and layout id in use.
func (p *pkg) nextMasterID() (uint64, error) {
	next := firstMasterID
	bump := func(id uint64) {
		if id >= next {
			next = id + 1
		}
	}

	rels, err := p.rels(p.mainPart)
	if err != nil {
		return 0, err
	}
	for _, m := range p.pres.masters {
		bump(m.id)
		r := rels.byID(m.rid)
		if r == nil {
			continue
		}
		for _, id := range layoutIDs(p.parts[resolveTarget(p.mainPart, r.Target)]) {
			bump(id)
		}
	}
	return next, nil
}
