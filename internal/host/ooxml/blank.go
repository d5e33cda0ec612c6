package ooxml

import "fmt"

const (
	nsMain = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
		`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
	xmlDecl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	ctBase  = "application/vnd.openxmlformats-officedocument."

	emptySpTree = `<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
		`<p:grpSpPr/></p:spTree>`
)

// blankParts is a presentation with one master, one blank layout, a theme
// and no slides, sized 16:9.
var blankParts = map[string]string{
	"_rels/.rels": blankRels(
		blankRel("rId1", "officeDocument", "ppt/presentation.xml"),
	),
	"ppt/presentation.xml": xmlDecl + `<p:presentation ` + nsMain + ` saveSubsetFonts="1">` +
		`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>` +
		`<p:sldSz cx="12192000" cy="6858000"/><p:notesSz cx="6858000" cy="9144000"/>` +
		`</p:presentation>`,
	"ppt/_rels/presentation.xml.rels": blankRels(
		blankRel("rId1", "slideMaster", "slideMasters/slideMaster1.xml"),
		blankRel("rId2", "theme", "theme/theme1.xml"),
	),
	"ppt/slideMasters/slideMaster1.xml": xmlDecl + `<p:sldMaster ` + nsMain + `>` +
		`<p:cSld>` + emptySpTree + `</p:cSld>` +
		`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" ` +
		`accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
		`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>` +
		`</p:sldMaster>`,
	"ppt/slideMasters/_rels/slideMaster1.xml.rels": blankRels(
		blankRel("rId1", "slideLayout", "../slideLayouts/slideLayout1.xml"),
		blankRel("rId2", "theme", "../theme/theme1.xml"),
	),
	"ppt/slideLayouts/slideLayout1.xml": xmlDecl + `<p:sldLayout ` + nsMain + ` type="blank" preserve="1">` +
		`<p:cSld name="Blank">` + emptySpTree + `</p:cSld>` +
		`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`,
	"ppt/slideLayouts/_rels/slideLayout1.xml.rels": blankRels(
		blankRel("rId1", "slideMaster", "../slideMasters/slideMaster1.xml"),
	),
	"ppt/theme/theme1.xml": xmlDecl + blankTheme,
}

var blankOrder = []string{
	"_rels/.rels",
	"ppt/presentation.xml",
	"ppt/_rels/presentation.xml.rels",
	"ppt/slideMasters/slideMaster1.xml",
	"ppt/slideMasters/_rels/slideMaster1.xml.rels",
	"ppt/slideLayouts/slideLayout1.xml",
	"ppt/slideLayouts/_rels/slideLayout1.xml.rels",
	"ppt/theme/theme1.xml",
}

const blankContentTypes = xmlDecl + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/ppt/presentation.xml" ContentType="` + ctPresentation + `"/>` +
	`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="` + ctBase + `presentationml.slideMaster+xml"/>` +
	`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="` + ctBase + `presentationml.slideLayout+xml"/>` +
	`<Override PartName="/ppt/theme/theme1.xml" ContentType="` + ctBase + `theme+xml"/>` +
	`</Types>`

const blankTheme = `<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Blank">` +
	`<a:themeElements>` +
	`<a:clrScheme name="Blank">` +
	`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>` +
	`<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>` +
	`<a:dk2><a:srgbClr val="44546A"/></a:dk2><a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>` +
	`<a:accent1><a:srgbClr val="4472C4"/></a:accent1><a:accent2><a:srgbClr val="ED7D31"/></a:accent2>` +
	`<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3><a:accent4><a:srgbClr val="FFC000"/></a:accent4>` +
	`<a:accent5><a:srgbClr val="5B9BD5"/></a:accent5><a:accent6><a:srgbClr val="70AD47"/></a:accent6>` +
	`<a:hlink><a:srgbClr val="0563C1"/></a:hlink><a:folHlink><a:srgbClr val="954F72"/></a:folHlink>` +
	`</a:clrScheme>` +
	`<a:fontScheme name="Blank">` +
	`<a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
	`</a:fontScheme>` +
	`<a:fmtScheme name="Blank">` +
	`<a:fillStyleLst>` + solidFill + solidFill + solidFill + `</a:fillStyleLst>` +
	`<a:lnStyleLst>` + line + line + line + `</a:lnStyleLst>` +
	`<a:effectStyleLst>` + effect + effect + effect + `</a:effectStyleLst>` +
	`<a:bgFillStyleLst>` + solidFill + solidFill + solidFill + `</a:bgFillStyleLst>` +
	`</a:fmtScheme>` +
	`</a:themeElements><a:objectDefaults/><a:extraClrSchemeLst/></a:theme>`

const (
	solidFill = `<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>`
	line      = `<a:ln w="6350">` + solidFill + `</a:ln>`
	effect    = `<a:effectStyle><a:effectLst/></a:effectStyle>`
)

func blankRel(id, relType, target string) string {
	return fmt.Sprintf(`<Relationship Id="%s" Type="%s%s" Target="%s"/>`, id, transitionalRels, relType, target)
}

func blankRels(items ...string) string {
	out := xmlDecl + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`
	for _, it := range items {
		out += it
	}
	return out + `</Relationships>`
}

// blankPackage builds a package holding no slides.
func blankPackage() (*pkg, error) {
	types, err := parseContentTypes([]byte(blankContentTypes))
	if err != nil {
		return nil, err
	}
	p := &pkg{
		parts:    make(map[string][]byte, len(blankParts)),
		types:    types,
		counters: make(map[string]int),
	}
	for _, name := range blankOrder {
		p.put(name, []byte(blankParts[name]))
	}
	if err := p.locateMainPart(); err != nil {
		return nil, err
	}
	return p, nil
}
