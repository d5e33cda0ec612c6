package ooxml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		source, target, want string
	}{
		{"", "ppt/presentation.xml", "ppt/presentation.xml"},
		{"", "/ppt/presentation.xml", "ppt/presentation.xml"},
		{"ppt/presentation.xml", "slides/slide1.xml", "ppt/slides/slide1.xml"},
		{"ppt/slides/slide1.xml", "../media/image1.png", "ppt/media/image1.png"},
		{"ppt/slides/slide1.xml", "/ppt/slideLayouts/slideLayout2.xml", "ppt/slideLayouts/slideLayout2.xml"},
	}
	for _, tt := range tests {
		t.Run(tt.source+"->"+tt.target, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveTarget(tt.source, tt.target))
		})
	}
}

func TestRelativeTarget(t *testing.T) {
	tests := []struct {
		source, part, want string
	}{
		{"", "ppt/presentation.xml", "ppt/presentation.xml"},
		{"ppt/presentation.xml", "ppt/slides/slide3.xml", "slides/slide3.xml"},
		{"ppt/slides/slide1.xml", "ppt/slideLayouts/slideLayout1.xml", "../slideLayouts/slideLayout1.xml"},
		{"ppt/slides/slide1.xml", "ppt/slides/slide2.xml", "slide2.xml"},
	}
	for _, tt := range tests {
		t.Run(tt.source+"->"+tt.part, func(t *testing.T) {
			got := relativeTarget(tt.source, tt.part)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.part, resolveTarget(tt.source, got), "round trip")
		})
	}
}

func TestRelsName(t *testing.T) {
	assert.Equal(t, "_rels/.rels", relsName(""))
	assert.Equal(t, "ppt/slides/_rels/slide1.xml.rels", relsName("ppt/slides/slide1.xml"))
}

func TestRelationships_AddAndRemove(t *testing.T) {
	rels := &relationships{Items: []relationship{
		{ID: "rId1", Type: relBase + "slideMaster", Target: "slideMasters/slideMaster1.xml"},
		{ID: "rId7", Type: relBase + "slide", Target: "slides/slide1.xml"},
	}}

	id := rels.add(relBase+"slide", "slides/slide2.xml")
	assert.Equal(t, "rId8", id)
	require.NotNil(t, rels.byID("rId8"))

	rels.removeID("rId7")
	assert.Nil(t, rels.byID("rId7"))
	assert.Len(t, rels.Items, 2)

	assert.Equal(t, "rId1", rels.firstOfType(relSlideMaster).ID)
	assert.Nil(t, rels.firstOfType(relNotesMaster))

	data, err := rels.marshal()
	require.NoError(t, err)
	parsed, err := parseRelationships(data)
	require.NoError(t, err)
	assert.Equal(t, rels.Items, parsed.Items)
}

func TestIsRelType(t *testing.T) {
	assert.True(t, isRelType(relBase+"slide", relSlide))
	assert.True(t, isRelType("http://purl.oclc.org/ooxml/officeDocument/relationships/slide", relSlide))
	assert.False(t, isRelType(relBase+"notesSlide", relSlide))
	assert.False(t, isRelType(relBase+"slideLayout", relSlide))
}

func TestPkg_FreshName(t *testing.T) {
	p := &pkg{
		parts: map[string][]byte{
			"ppt/slides/slide1.xml": nil,
			"ppt/slides/slide2.xml": nil,
			"ppt/media/image1.png":  nil,
		},
		counters: map[string]int{},
	}
	assert.Equal(t, "ppt/slides/slide3.xml", p.freshName("ppt/slides/slide1.xml"))
	p.put("ppt/slides/slide3.xml", nil)
	assert.Equal(t, "ppt/slides/slide4.xml", p.freshName("ppt/slides/slide2.xml"))
	assert.Equal(t, "ppt/media/image2.png", p.freshName("ppt/media/image1.png"))
	assert.Equal(t, "ppt/theme/theme1.xml", p.freshName("ppt/theme/theme7.xml"))
}

func TestContentTypes_Adopt(t *testing.T) {
	src := &contentTypes{
		Defaults:  []ctDefault{{Extension: "png", ContentType: "image/png"}, {Extension: "emf", ContentType: "image/x-emf"}},
		Overrides: []ctOverride{{PartName: "/ppt/slides/slide1.xml", ContentType: ctBase + "presentationml.slide+xml"}},
	}
	dst := &contentTypes{
		Defaults: []ctDefault{{Extension: "png", ContentType: "image/png"}},
	}

	dst.adopt(src, "ppt/slides/slide1.xml", "ppt/slides/slide4.xml")
	ct, ok := dst.override("ppt/slides/slide4.xml")
	require.True(t, ok)
	assert.Equal(t, ctBase+"presentationml.slide+xml", ct)

	dst.adopt(src, "ppt/media/image1.png", "ppt/media/image2.png")
	assert.Len(t, dst.Defaults, 1, "png already registered")

	dst.adopt(src, "ppt/media/image1.emf", "ppt/media/image1.emf")
	ct, ok = dst.byExtension("ppt/media/image1.emf")
	require.True(t, ok)
	assert.Equal(t, "image/x-emf", ct)

	dst.removeOverride("ppt/slides/slide4.xml")
	_, ok = dst.override("ppt/slides/slide4.xml")
	assert.False(t, ok)
}

const presNS = `xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`

func TestPresentationDoc_Scan(t *testing.T) {
	doc, err := parsePresentation([]byte(`<p:presentation ` + presNS + `>` +
		`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>` +
		`<p:sldIdLst><p:sldId id="256" r:id="rId5"/><p:sldId id="300" r:id="rId6"/></p:sldIdLst>` +
		`<p:sldSz cx="1" cy="1"/></p:presentation>`))
	require.NoError(t, err)

	assert.Equal(t, "p", doc.p)
	assert.Equal(t, "r", doc.r)
	assert.Equal(t, []idEntry{{id: 2147483648, rid: "rId1"}}, doc.masters)
	assert.Equal(t, []idEntry{{id: 256, rid: "rId5"}, {id: 300, rid: "rId6"}}, doc.slides)
	assert.Equal(t, uint64(301), doc.nextSlideID())

	require.NoError(t, doc.removeSlide("rId5"))
	assert.Equal(t, []idEntry{{id: 300, rid: "rId6"}}, doc.slides)
	assert.ErrorIs(t, doc.removeSlide("rId5"), ErrCorruptPackage)
}

func TestPresentationDoc_ScanRejectsOtherRoots(t *testing.T) {
	_, err := parsePresentation([]byte(`<w:document xmlns:w="urn:x"/>`))
	assert.ErrorIs(t, err, ErrCorruptPackage)

	_, err = parsePresentation([]byte(`<p:presentation xmlns:p="urn:p"/>`))
	assert.ErrorIs(t, err, ErrCorruptPackage, "relationships namespace required")
}

func TestPresentationDoc_AppendSlide(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing list", `<p:sldSz cx="1" cy="1"/>`},
		{"empty list", `<p:sldIdLst/><p:sldSz cx="1" cy="1"/>`},
		{"existing list", `<p:sldIdLst><p:sldId id="256" r:id="rId2"/></p:sldIdLst><p:sldSz cx="1" cy="1"/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parsePresentation([]byte(`<p:presentation ` + presNS + `>` + tt.body + `</p:presentation>`))
			require.NoError(t, err)
			before := len(doc.slides)

			id := doc.nextSlideID()
			require.NoError(t, doc.appendSlide(id, "rId9"))
			require.Len(t, doc.slides, before+1)
			assert.Equal(t, idEntry{id: id, rid: "rId9"}, doc.slides[before])
			assert.Contains(t, string(doc.raw), `</p:sldIdLst><p:sldSz`)
		})
	}
}

func TestPresentationDoc_StripSlides(t *testing.T) {
	doc, err := parsePresentation([]byte(`<p:presentation ` + presNS + `>` +
		`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>` +
		`<p:sldIdLst><p:sldId id="256" r:id="rId2"/><p:sldId id="257" r:id="rId3"/></p:sldIdLst>` +
		`<p:sldSz cx="1" cy="1"/>` +
		`<p:custShowLst><p:custShow name="x" id="0"><p:sldLst><p:sld r:id="rId2"/></p:sldLst></p:custShow></p:custShowLst>` +
		`<p:extLst><p:ext uri="` + sectionsExtURI + `"><p14:sectionLst xmlns:p14="urn:p14"/></p:ext>` +
		`<p:ext uri="{OTHER}"><keep/></p:ext></p:extLst>` +
		`</p:presentation>`))
	require.NoError(t, err)

	rids, err := doc.stripSlides()
	require.NoError(t, err)
	assert.Equal(t, []string{"rId2", "rId3"}, rids)
	assert.Empty(t, doc.slides)
	assert.Len(t, doc.masters, 1)

	raw := string(doc.raw)
	assert.NotContains(t, raw, "sldIdLst")
	assert.NotContains(t, raw, "custShowLst")
	assert.NotContains(t, raw, "sectionLst")
	assert.Contains(t, raw, "<keep/>")

	require.NoError(t, doc.appendSlide(doc.nextSlideID(), "rId2"))
	assert.Equal(t, []idEntry{{id: firstSlideID, rid: "rId2"}}, doc.slides)
}

func TestRenumberLayoutIDs(t *testing.T) {
	master := []byte(`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/>` +
		`<p:sldLayoutId id="2147483650" r:id="rId2"/></p:sldLayoutIdLst>`)
	assert.Equal(t, []uint64{2147483649, 2147483650}, layoutIDs(master))

	next := uint64(2147483700)
	out := renumberLayoutIDs(master, func() uint64 {
		next++
		return next
	})
	assert.Equal(t, []uint64{2147483701, 2147483702}, layoutIDs(out))
	assert.Contains(t, string(out), `r:id="rId2"`)
}

func TestViewerCommand(t *testing.T) {
	assert.Equal(t,
		[]string{"soffice", "--show", "/tmp/x.pptx"},
		viewerCommand([]string{"soffice", "--show", "{path}"}, "/tmp/x.pptx"))
	assert.Equal(t,
		[]string{"xdg-open", "/tmp/x.pptx"},
		viewerCommand([]string{"xdg-open"}, "/tmp/x.pptx"))
	assert.Equal(t,
		[]string{"viewer", "--file=/tmp/x.pptx"},
		viewerCommand([]string{"viewer", "--file={path}"}, "/tmp/x.pptx"))
	assert.NotEmpty(t, DefaultViewer())
}
