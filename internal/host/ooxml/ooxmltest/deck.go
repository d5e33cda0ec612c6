// Package ooxmltest generates small presentation packages for tests.
// Every slide carries a single text run holding its label.
package ooxmltest

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	nsDecl = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
		`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
	relsNS         = `http://schemas.openxmlformats.org/package/2006/relationships`
	relBase        = `http://schemas.openxmlformats.org/officeDocument/2006/relationships/`
	ctBase         = `application/vnd.openxmlformats-officedocument.`
	ctPresentation = ctBase + "presentationml.presentation.main+xml"
)

// Deck describes a generated presentation.
type Deck struct {
	Labels []string
	Image  bool // first slide embeds ppt/media/image1.png
	Notes  bool // every slide has a notes slide
}

// WriteDeck builds a minimal but structurally complete .pptx whose slides
// each carry one text run with their label.
func WriteDeck(t testing.TB, dir, name string, d Deck) string {
	t.Helper()

	parts := map[string]string{}
	var overrides []string
	override := func(part, ct string) {
		overrides = append(overrides, fmt.Sprintf(`<Override PartName="/%s" ContentType="%s"/>`, part, ct))
	}

	parts["_rels/.rels"] = rels(rel("rId1", "officeDocument", "ppt/presentation.xml"))

	presRels := []string{
		rel("rId1", "slideMaster", "slideMasters/slideMaster1.xml"),
		rel("rId2", "theme", "theme/theme1.xml"),
	}
	var presExtra string
	if d.Notes {
		presRels = append(presRels, rel("rId3", "notesMaster", "notesMasters/notesMaster1.xml"))
		presExtra = `<p:notesMasterIdLst><p:notesMasterId r:id="rId3"/></p:notesMasterIdLst>`
		parts["ppt/notesMasters/notesMaster1.xml"] = `<p:notesMaster ` + nsDecl + `><p:cSld><p:spTree/></p:cSld></p:notesMaster>`
		parts["ppt/notesMasters/_rels/notesMaster1.xml.rels"] = rels(rel("rId1", "theme", "../theme/theme1.xml"))
		override("ppt/notesMasters/notesMaster1.xml", ctBase+"presentationml.notesMaster+xml")
	}

	var sldIDs strings.Builder
	for i, label := range d.Labels {
		n := i + 1
		rid := fmt.Sprintf("rId%d", 10+n)
		presRels = append(presRels, rel(rid, "slide", fmt.Sprintf("slides/slide%d.xml", n)))
		fmt.Fprintf(&sldIDs, `<p:sldId id="%d" r:id="%s"/>`, 255+n, rid)

		slide := fmt.Sprintf("ppt/slides/slide%d.xml", n)
		parts[slide] = `<p:sld ` + nsDecl + `><p:cSld><p:spTree><p:sp><p:txBody><a:p><a:r><a:t>` +
			label + `</a:t></a:r></a:p></p:txBody></p:sp></p:spTree></p:cSld></p:sld>`
		override(slide, ctBase+"presentationml.slide+xml")

		slideRels := []string{rel("rId1", "slideLayout", "../slideLayouts/slideLayout1.xml")}
		if d.Image && n == 1 {
			slideRels = append(slideRels, rel("rId2", "image", "../media/image1.png"))
			parts["ppt/media/image1.png"] = "PNG:" + name
		}
		if d.Notes {
			notes := fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n)
			slideRels = append(slideRels, rel("rId3", "notesSlide", fmt.Sprintf("../notesSlides/notesSlide%d.xml", n)))
			parts[notes] = `<p:notes ` + nsDecl + `><p:cSld><p:spTree><p:sp><p:txBody><a:p><a:r><a:t>note ` +
				label + `</a:t></a:r></a:p></p:txBody></p:sp></p:spTree></p:cSld></p:notes>`
			parts[fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", n)] = rels(
				rel("rId1", "notesMaster", "../notesMasters/notesMaster1.xml"),
				rel("rId2", "slide", fmt.Sprintf("../slides/slide%d.xml", n)),
			)
			override(notes, ctBase+"presentationml.notesSlide+xml")
		}
		parts[fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n)] = rels(slideRels...)
	}

	list := ""
	if sldIDs.Len() > 0 {
		list = "<p:sldIdLst>" + sldIDs.String() + "</p:sldIdLst>"
	}
	parts["ppt/presentation.xml"] = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<p:presentation ` + nsDecl + `>` +
		`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>` +
		presExtra + list +
		`<p:sldSz cx="9144000" cy="6858000"/><p:notesSz cx="6858000" cy="9144000"/></p:presentation>`
	parts["ppt/_rels/presentation.xml.rels"] = rels(presRels...)
	override("ppt/presentation.xml", ctPresentation)

	parts["ppt/slideMasters/slideMaster1.xml"] = `<p:sldMaster ` + nsDecl + `><p:cSld><p:spTree/></p:cSld>` +
		`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst></p:sldMaster>`
	parts["ppt/slideMasters/_rels/slideMaster1.xml.rels"] = rels(
		rel("rId1", "slideLayout", "../slideLayouts/slideLayout1.xml"),
		rel("rId2", "theme", "../theme/theme1.xml"),
	)
	override("ppt/slideMasters/slideMaster1.xml", ctBase+"presentationml.slideMaster+xml")

	parts["ppt/slideLayouts/slideLayout1.xml"] = `<p:sldLayout ` + nsDecl + `><p:cSld name="` + name + `"><p:spTree/></p:cSld></p:sldLayout>`
	parts["ppt/slideLayouts/_rels/slideLayout1.xml.rels"] = rels(rel("rId1", "slideMaster", "../slideMasters/slideMaster1.xml"))
	override("ppt/slideLayouts/slideLayout1.xml", ctBase+"presentationml.slideLayout+xml")

	parts["ppt/theme/theme1.xml"] = `<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="` + name + `"/>`
	override("ppt/theme/theme1.xml", ctBase+"theme+xml")

	types := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Default Extension="png" ContentType="image/png"/>` +
		strings.Join(overrides, "") + `</Types>`

	out := filepath.Join(dir, name)
	f, err := os.Create(out)
	require.NoError(t, err, "create deck")
	zw := zip.NewWriter(f)
	writeEntry(t, zw, "[Content_Types].xml", types)
	for part, body := range parts {
		writeEntry(t, zw, part, body)
	}
	require.NoError(t, zw.Close(), "close zip")
	require.NoError(t, f.Close(), "close deck")
	return out
}

func writeEntry(t testing.TB, zw *zip.Writer, name, body string) {
	t.Helper()
	w, err := zw.Create(name)
	require.NoError(t, err, "create entry %s", name)
	_, err = w.Write([]byte(body))
	require.NoError(t, err, "write entry %s", name)
}

func rel(id, relType, target string) string {
	return fmt.Sprintf(`<Relationship Id="%s" Type="%s%s" Target="%s"/>`, id, relBase, relType, target)
}

func rels(items ...string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Relationships xmlns="` + relsNS + `">` +
		strings.Join(items, "") + `</Relationships>`
}

var (
	labelPattern   = regexp.MustCompile(`<a:t>([^<]*)</a:t>`)
	slideIDPattern = regexp.MustCompile(`<p:sldId id="\d+" r:id="([^"]+)"/>`)
	slideRel       = regexp.MustCompile(`<Relationship Id="([^"]+)" Type="[^"]*/slide" Target="([^"]+)"`)
)

// Labels returns the slide labels of the package at path in presentation
// order. It reads packages written by WriteDeck and by the native host.
func Labels(t testing.TB, filename string) []string {
	t.Helper()
	zr, err := zip.OpenReader(filename)
	require.NoError(t, err, "open %s", filename)
	defer zr.Close()

	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err, "open entry %s", f.Name)
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		require.NoError(t, err, "read entry %s", f.Name)
		parts[f.Name] = string(data)
	}

	targets := map[string]string{}
	for _, m := range slideRel.FindAllStringSubmatch(parts["ppt/_rels/presentation.xml.rels"], -1) {
		targets[m[1]] = path.Join("ppt", m[2])
	}
	var labels []string
	for _, m := range slideIDPattern.FindAllStringSubmatch(parts["ppt/presentation.xml"], -1) {
		target, ok := targets[m[1]]
		require.True(t, ok, "slide relationship %s", m[1])
		lm := labelPattern.FindStringSubmatch(parts[target])
		require.NotNil(t, lm, "slide %s has no label", target)
		labels = append(labels, lm[1])
	}
	return labels
}
