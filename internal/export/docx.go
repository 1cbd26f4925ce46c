package export

import (
	"io"
	"strconv"
	"strings"
)

const (
	nsWordML      = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	ctDocxMain    = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ctDocxStyles  = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	relDocxStyles = nsOfficeRels + "/styles"

	// Half-points and twentieths of a point.
	docxSubtitleSize = 28
	docxSpaceAfter   = 240
	docxLineSpacing  = 276
)

var (
	subtitleSizeProps = `<w:sz w:val="` + strconv.Itoa(docxSubtitleSize) + `"/><w:szCs w:val="` + strconv.Itoa(docxSubtitleSize) + `"/>`
	bodySpacing       = `<w:spacing w:after="` + strconv.Itoa(docxSpaceAfter) + `" w:line="` + strconv.Itoa(docxLineSpacing) + `" w:lineRule="auto"/>`
)

// DocxRenderer writes a WordprocessingML package: a centered title, an italic
// topic subtitle, then one Heading1 block per section.
type DocxRenderer struct{}

func (DocxRenderer) Extension() string { return "docx" }

func (DocxRenderer) MIMEType() string { return MIMETypeDocx }

func (DocxRenderer) Render(w io.Writer, snap Snapshot) error {
	pw := newPartWriter(w)
	parts := []struct{ name, body string }{
		{"[Content_Types].xml", contentTypesXML([]contentOverride{
			{PartName: "/word/document.xml", ContentType: ctDocxMain},
			{PartName: "/word/styles.xml", ContentType: ctDocxStyles},
			{PartName: "/docProps/core.xml", ContentType: ctCoreProps},
		})},
		{"_rels/.rels", relationshipsXML([]relationship{
			{ID: "rId1", Type: relOfficeDocument, Target: "word/document.xml"},
			{ID: "rId2", Type: relCoreProps, Target: "docProps/core.xml"},
		})},
		{"word/_rels/document.xml.rels", relationshipsXML([]relationship{
			{ID: "rId1", Type: relDocxStyles, Target: "styles.xml"},
		})},
		{"word/document.xml", docxDocumentXML(snap)},
		{"word/styles.xml", docxStylesXML},
		{"docProps/core.xml", corePropsXML(snap.Name, snap.Topic)},
	}
	for _, p := range parts {
		if err := pw.add(p.name, p.body); err != nil {
			return err
		}
	}
	return pw.close()
}

func docxDocumentXML(snap Snapshot) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<w:document xmlns:w="` + nsWordML + `" xmlns:r="` + nsOfficeRels + `"><w:body>`)

	b.WriteString(`<w:p><w:pPr><w:pStyle w:val="Title"/><w:jc w:val="center"/></w:pPr>`)
	writeDocxRun(&b, run{Text: snap.Name}, "")
	b.WriteString(`</w:p>`)

	b.WriteString(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr>`)
	writeDocxRun(&b, run{Text: "Topic: " + snap.Topic, Italic: true}, subtitleSizeProps)
	b.WriteString(`</w:p>`)
	b.WriteString(`<w:p/>`)

	for _, s := range snap.Sections {
		b.WriteString(`<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr>`)
		writeDocxRun(&b, run{Text: s.Title}, "")
		b.WriteString(`</w:p>`)

		content, ok := sectionText(s)
		if !ok {
			b.WriteString(`<w:p>`)
			writeDocxRun(&b, run{Text: PlaceholderText}, "")
			b.WriteString(`</w:p>`)
		} else {
			for _, para := range splitParagraphs(content) {
				b.WriteString(`<w:p><w:pPr>` + bodySpacing + `</w:pPr>`)
				for _, r := range inlineRuns(para) {
					writeDocxRun(&b, r, "")
				}
				b.WriteString(`</w:p>`)
			}
		}
		b.WriteString(`<w:p/>`)
	}

	b.WriteString(`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/>`)
	b.WriteString(`<w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440" w:header="720" w:footer="720" w:gutter="0"/>`)
	b.WriteString(`</w:sectPr></w:body></w:document>`)
	return b.String()
}

// splitParagraphs splits on blank-line boundaries and drops empty pieces.
func splitParagraphs(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	var out []string
	for _, p := range strings.Split(content, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeDocxRun(b *strings.Builder, r run, extraProps string) {
	b.WriteString(`<w:r>`)
	if r.Bold || r.Italic || r.Code || extraProps != "" {
		b.WriteString(`<w:rPr>`)
		if r.Code {
			b.WriteString(`<w:rFonts w:ascii="Consolas" w:hAnsi="Consolas" w:cs="Consolas"/>`)
		}
		if r.Bold {
			b.WriteString(`<w:b/>`)
		}
		if r.Italic {
			b.WriteString(`<w:i/>`)
		}
		b.WriteString(extraProps)
		b.WriteString(`</w:rPr>`)
	}
	if r.Break {
		b.WriteString(`<w:br/>`)
	}
	b.WriteString(`<w:t xml:space="preserve">` + esc(r.Text) + `</w:t></w:r>`)
}

const docxStylesXML = xmlHeader + `<w:styles xmlns:w="` + nsWordML + `">` +
	`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:eastAsia="Calibri" w:cs="Calibri"/>` +
	`<w:sz w:val="22"/><w:szCs w:val="22"/><w:lang w:val="en-US"/></w:rPr></w:rPrDefault>` +
	`<w:pPrDefault><w:pPr><w:spacing w:after="160" w:line="259" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>` +
	`<w:pPr><w:spacing w:after="80" w:line="240" w:lineRule="auto"/><w:contextualSpacing/></w:pPr>` +
	`<w:rPr><w:rFonts w:ascii="Calibri Light" w:hAnsi="Calibri Light"/><w:kern w:val="28"/><w:sz w:val="56"/><w:szCs w:val="56"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:qFormat/>` +
	`<w:pPr><w:keepNext/><w:keepLines/><w:spacing w:before="360" w:after="80"/><w:outlineLvl w:val="0"/></w:pPr>` +
	`<w:rPr><w:rFonts w:ascii="Calibri Light" w:hAnsi="Calibri Light"/><w:color w:val="2F5496"/><w:sz w:val="32"/><w:szCs w:val="32"/></w:rPr></w:style>` +
	`</w:styles>`
