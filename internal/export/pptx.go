package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	nsDrawingML     = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPresentML     = "http://schemas.openxmlformats.org/presentationml/2006/main"
	ctPptxMain      = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctPptxMaster    = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctPptxLayout    = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctPptxSlide     = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctTheme         = "application/vnd.openxmlformats-officedocument.theme+xml"
	relSlideMaster  = nsOfficeRels + "/slideMaster"
	relSlideLayout  = nsOfficeRels + "/slideLayout"
	relSlide        = nsOfficeRels + "/slide"
	relTheme        = nsOfficeRels + "/theme"
	pptxNamespaces  = `xmlns:a="` + nsDrawingML + `" xmlns:r="` + nsOfficeRels + `" xmlns:p="` + nsPresentML + `"`
	pptxBodySize    = 1800 // hundredths of a point
	firstSlideID    = 256
	firstSlideRelID = 3
)

// 10in x 7.5in in EMU.
const (
	slideWidthEMU  = 9144000
	slideHeightEMU = 6858000
)

// PptxRenderer writes a PresentationML package: a title slide followed by one
// title-and-content slide per section.
type PptxRenderer struct{}

func (PptxRenderer) Extension() string { return "pptx" }

func (PptxRenderer) MIMEType() string { return MIMETypePptx }

func (PptxRenderer) Render(w io.Writer, snap Snapshot) error {
	slides := make([]string, 0, len(snap.Sections)+1)
	slides = append(slides, titleSlideXML(snap.Name, snap.Topic))
	for _, s := range snap.Sections {
		slides = append(slides, contentSlideXML(s))
	}

	overrides := []contentOverride{
		{PartName: "/ppt/presentation.xml", ContentType: ctPptxMain},
		{PartName: "/ppt/slideMasters/slideMaster1.xml", ContentType: ctPptxMaster},
		{PartName: "/ppt/slideLayouts/slideLayout1.xml", ContentType: ctPptxLayout},
		{PartName: "/ppt/slideLayouts/slideLayout2.xml", ContentType: ctPptxLayout},
		{PartName: "/ppt/theme/theme1.xml", ContentType: ctTheme},
		{PartName: "/docProps/core.xml", ContentType: ctCoreProps},
	}
	presRels := []relationship{
		{ID: "rId1", Type: relSlideMaster, Target: "slideMasters/slideMaster1.xml"},
		{ID: "rId2", Type: relTheme, Target: "theme/theme1.xml"},
	}
	for i := range slides {
		n := i + 1
		overrides = append(overrides, contentOverride{PartName: fmt.Sprintf("/ppt/slides/slide%d.xml", n), ContentType: ctPptxSlide})
		presRels = append(presRels, relationship{
			ID:     "rId" + strconv.Itoa(firstSlideRelID+i),
			Type:   relSlide,
			Target: fmt.Sprintf("slides/slide%d.xml", n),
		})
	}

	pw := newPartWriter(w)
	add := func(name, body string) error { return pw.add(name, body) }

	if err := add("[Content_Types].xml", contentTypesXML(overrides)); err != nil {
		return err
	}
	if err := add("_rels/.rels", relationshipsXML([]relationship{
		{ID: "rId1", Type: relOfficeDocument, Target: "ppt/presentation.xml"},
		{ID: "rId2", Type: relCoreProps, Target: "docProps/core.xml"},
	})); err != nil {
		return err
	}
	if err := add("docProps/core.xml", corePropsXML(snap.Name, snap.Topic)); err != nil {
		return err
	}
	if err := add("ppt/presentation.xml", presentationXML(len(slides))); err != nil {
		return err
	}
	if err := add("ppt/_rels/presentation.xml.rels", relationshipsXML(presRels)); err != nil {
		return err
	}
	if err := add("ppt/slideMasters/slideMaster1.xml", slideMasterXML); err != nil {
		return err
	}
	if err := add("ppt/slideMasters/_rels/slideMaster1.xml.rels", relationshipsXML([]relationship{
		{ID: "rId1", Type: relSlideLayout, Target: "../slideLayouts/slideLayout1.xml"},
		{ID: "rId2", Type: relSlideLayout, Target: "../slideLayouts/slideLayout2.xml"},
		{ID: "rId3", Type: relTheme, Target: "../theme/theme1.xml"},
	})); err != nil {
		return err
	}
	masterRel := relationshipsXML([]relationship{
		{ID: "rId1", Type: relSlideMaster, Target: "../slideMasters/slideMaster1.xml"},
	})
	for i, layout := range []string{titleLayoutXML, contentLayoutXML} {
		n := i + 1
		if err := add(fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", n), layout); err != nil {
			return err
		}
		if err := add(fmt.Sprintf("ppt/slideLayouts/_rels/slideLayout%d.xml.rels", n), masterRel); err != nil {
			return err
		}
	}
	if err := add("ppt/theme/theme1.xml", themeXML); err != nil {
		return err
	}
	for i, body := range slides {
		n := i + 1
		layout := "../slideLayouts/slideLayout2.xml"
		if i == 0 {
			layout = "../slideLayouts/slideLayout1.xml"
		}
		if err := add(fmt.Sprintf("ppt/slides/slide%d.xml", n), body); err != nil {
			return err
		}
		if err := add(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), relationshipsXML([]relationship{
			{ID: "rId1", Type: relSlideLayout, Target: layout},
		})); err != nil {
			return err
		}
	}
	return pw.close()
}

func presentationXML(slideCount int) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<p:presentation ` + pptxNamespaces + ` saveSubsetFonts="1">`)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	b.WriteString(`<p:sldIdLst>`)
	for i := 0; i < slideCount; i++ {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, firstSlideID+i, firstSlideRelID+i)
	}
	b.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d" type="screen4x3"/>`, slideWidthEMU, slideHeightEMU)
	b.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func titleSlideXML(name, topic string) string {
	var b strings.Builder
	beginSlide(&b)
	writePlaceholder(&b, 2, "Title 1", `type="ctrTitle"`, [][]run{{{Text: name}}}, 0)
	writePlaceholder(&b, 3, "Subtitle 2", `type="subTitle" idx="1"`, [][]run{{{Text: topic}}}, 0)
	endSlide(&b)
	return b.String()
}

func contentSlideXML(s SectionSnapshot) string {
	var body [][]run
	if content, ok := sectionText(s); ok {
		for _, line := range bodyLines(content) {
			body = append(body, inlineRuns(line))
		}
	}
	if len(body) == 0 {
		body = [][]run{{{Text: PlaceholderText}}}
	}

	var b strings.Builder
	beginSlide(&b)
	writePlaceholder(&b, 2, "Title 1", `type="title"`, [][]run{{{Text: s.Title}}}, 0)
	writePlaceholder(&b, 3, "Content Placeholder 2", `idx="1"`, body, pptxBodySize)
	endSlide(&b)
	return b.String()
}

// bodyLines yields one entry per non-blank line with any leading bullet
// marker removed; the layout supplies its own bullets.
func bodyLines(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line = stripBullet(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func stripBullet(line string) string {
	switch {
	case strings.HasPrefix(line, "•"):
		return strings.TrimSpace(strings.TrimPrefix(line, "•"))
	case strings.HasPrefix(line, "**"):
		// bold markup, not a bullet
		return line
	case strings.HasPrefix(line, "-"), strings.HasPrefix(line, "*"):
		return strings.TrimSpace(line[1:])
	}
	return line
}

func beginSlide(b *strings.Builder) {
	b.WriteString(xmlHeader)
	b.WriteString(`<p:sld ` + pptxNamespaces + `><p:cSld><p:spTree>`)
	b.WriteString(groupShapeProps)
}

func endSlide(b *strings.Builder) {
	b.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
}

// writePlaceholder emits a shape bound to a layout placeholder. Each element of
// paras becomes one paragraph. size 0 inherits the layout's size.
func writePlaceholder(b *strings.Builder, id int, name, ph string, paras [][]run, size int) {
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr>`, id, esc(name))
	b.WriteString(`<p:nvPr><p:ph ` + ph + `/></p:nvPr></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/>`)
	for _, runs := range paras {
		b.WriteString(`<a:p>`)
		for _, r := range runs {
			if r.Break {
				b.WriteString(`<a:br><a:rPr lang="en-US"/></a:br>`)
			}
			b.WriteString(`<a:r>`)
			writePptxRunProps(b, r, size)
			b.WriteString(`<a:t>` + esc(r.Text) + `</a:t></a:r>`)
		}
		b.WriteString(`</a:p>`)
	}
	b.WriteString(`</p:txBody></p:sp>`)
}

func writePptxRunProps(b *strings.Builder, r run, size int) {
	b.WriteString(`<a:rPr lang="en-US"`)
	if size > 0 {
		b.WriteString(` sz="` + strconv.Itoa(size) + `"`)
	}
	if r.Bold {
		b.WriteString(` b="1"`)
	}
	if r.Italic {
		b.WriteString(` i="1"`)
	}
	b.WriteString(` dirty="0"`)
	if r.Code {
		b.WriteString(`><a:latin typeface="Consolas"/></a:rPr>`)
		return
	}
	b.WriteString(`/>`)
}
