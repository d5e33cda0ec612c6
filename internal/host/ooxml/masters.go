package ooxml

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
)

const ctSlideLayoutTag = "slideLayout+xml"

// reuseLayout maps srcLayout onto a destination layout when the
// destination already holds a master identical to the layout's own. Every
// layout of that master is mapped at once.
func (imp *slideImporter) reuseLayout(srcLayout string) (string, bool, error) {
	if !strings.HasSuffix(imp.src.types.contentType(srcLayout), ctSlideLayoutTag) {
		return "", false, nil
	}
	srcMaster, err := imp.src.layoutMaster(srcLayout)
	if err != nil || srcMaster == "" {
		return "", false, err
	}

	dstMaster, decided := imp.reused[srcMaster]
	if !decided {
		dstMaster, err = imp.matchMaster(srcMaster)
		if err != nil {
			return "", false, err
		}
		imp.reused[srcMaster] = dstMaster
	}
	if dstMaster == "" {
		return "", false, nil
	}

	dstLayout, ok := imp.mapped[srcLayout]
	return dstLayout, ok, nil
}

// matchMaster returns the destination master equal to srcMaster and maps
// its layouts, or "" when there is none.
func (imp *slideImporter) matchMaster(srcMaster string) (string, error) {
	fp, err := imp.src.masterFingerprint(srcMaster)
	if err != nil {
		return "", err
	}
	dstMaster, err := imp.dst.masterByFingerprint(fp)
	if err != nil || dstMaster == "" {
		return "", err
	}

	srcLayouts, err := imp.src.masterLayouts(srcMaster)
	if err != nil {
		return "", err
	}
	dstLayouts, err := imp.dst.masterLayouts(dstMaster)
	if err != nil {
		return "", err
	}
	if len(srcLayouts) != len(dstLayouts) {
		return "", nil
	}

	imp.mapped[srcMaster] = dstMaster
	for i, l := range srcLayouts {
		imp.mapped[l] = dstLayouts[i]
	}
	return dstMaster, nil
}

// layoutMaster returns the master a layout is based on.
func (p *pkg) layoutMaster(layout string) (string, error) {
	rels, err := p.rels(layout)
	if err != nil {
		return "", err
	}
	r := rels.firstOfType(relSlideMaster)
	if r == nil || r.TargetMode == targetModeExternal {
		return "", nil
	}
	return resolveTarget(layout, r.Target), nil
}

// masterLayouts returns a master's layouts in relationship order.
func (p *pkg) masterLayouts(master string) ([]string, error) {
	rels, err := p.rels(master)
	if err != nil {
		return nil, err
	}
	var layouts []string
	for _, r := range rels.Items {
		if r.TargetMode != targetModeExternal && isRelType(r.Type, relSlideLayout) {
			layouts = append(layouts, resolveTarget(master, r.Target))
		}
	}
	return layouts, nil
}

func (p *pkg) masterByFingerprint(fp string) (string, error) {
	rels, err := p.rels(p.mainPart)
	if err != nil {
		return "", err
	}
	for _, m := range p.pres.masters {
		r := rels.byID(m.rid)
		if r == nil {
			continue
		}
		name := resolveTarget(p.mainPart, r.Target)
		got, err := p.masterFingerprint(name)
		if err != nil {
			return "", err
		}
		if got == fp {
			return name, nil
		}
	}
	return "", nil
}

// masterFingerprint hashes a master with everything it reaches: layouts,
// theme and media. Part names and layout ids do not contribute, so a copy
// hashes the same as its original.
func (p *pkg) masterFingerprint(master string) (string, error) {
	h := sha256.New()
	if err := p.hashPart(h, master, make(map[string]int)); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (p *pkg) hashPart(h hash.Hash, name string, seen map[string]int) error {
	if i, ok := seen[name]; ok {
		fmt.Fprintf(h, "ref %d\n", i)
		return nil
	}
	seen[name] = len(seen)

	data, ok := p.parts[name]
	if !ok {
		return fmt.Errorf("%w: missing part %s", ErrCorruptPackage, name)
	}
	ct := p.types.contentType(name)
	if strings.HasSuffix(ct, ctSlideMasterTag) {
		data = renumberLayoutIDs(data, func() uint64 { return 0 })
	}
	fmt.Fprintf(h, "part %s %d\n", ct, len(data))
	h.Write(data)

	rels, err := p.rels(name)
	if err != nil {
		return err
	}
	for _, r := range rels.Items {
		relType := r.Type[strings.LastIndex(r.Type, "/")+1:]
		if r.TargetMode == targetModeExternal {
			fmt.Fprintf(h, "rel %s %s external %s\n", r.ID, relType, r.Target)
			continue
		}
		fmt.Fprintf(h, "rel %s %s\n", r.ID, relType)
		if err := p.hashPart(h, resolveTarget(name, r.Target), seen); err != nil {
			return err
		}
	}
	return nil
}
