package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	types "github.com/yungbote/docforge-backend/internal/domain"
)

func TestDocxInlineFormattingAndBreaks(t *testing.T) {
	doc, err := Export(Snapshot{
		Name:         "Fmt",
		Topic:        "t",
		DocumentType: types.DocumentTypeWord,
		Sections: []SectionSnapshot{{
			Title:   "S",
			Content: ptr("Revenue grew **12%** this quarter.\n\nLine one\nLine two\n\n# not a heading"),
		}},
	})
	require.NoError(t, err)

	zr := openPackage(t, doc)
	paras := docxParagraphs(t, readPart(t, zr, "word/document.xml"))

	var body []docxPara
	for _, p := range paras[4:] {
		if p.Text != "" {
			body = append(body, p)
		}
	}
	require.Len(t, body, 3)
	require.Equal(t, "Revenue grew 12% this quarter.", body[0].Text)
	require.True(t, body[0].Bold)
	require.Equal(t, "Line one\nLine two", body[1].Text)
	require.Equal(t, "# not a heading", body[2].Text)

	raw := string(readPart(t, zr, "word/document.xml"))
	require.True(t, strings.HasPrefix(raw, "<?xml"))
	require.Contains(t, raw, `w:after="240" w:line="276"`)
}

func TestDocxPackageParts(t *testing.T) {
	doc, err := Export(Snapshot{Name: "A & B <draft>", Topic: "x", DocumentType: types.DocumentTypeWord,
		Sections: []SectionSnapshot{{Title: "S", Content: ptr("c")}}})
	require.NoError(t, err)
	zr := openPackage(t, doc)

	ct := string(readPart(t, zr, "[Content_Types].xml"))
	require.Contains(t, ct, ctDocxMain)
	require.Contains(t, string(readPart(t, zr, "_rels/.rels")), "word/document.xml")
	require.Contains(t, string(readPart(t, zr, "word/styles.xml")), `w:styleId="Heading1"`)
	require.Contains(t, string(readPart(t, zr, "docProps/core.xml")), "A &amp; B &lt;draft&gt;")

	paras := docxParagraphs(t, readPart(t, zr, "word/document.xml"))
	require.Equal(t, "A & B <draft>", paras[0].Text)
	require.Equal(t, "A__B_draft.docx", doc.Filename)
}

func TestSplitParagraphs(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, splitParagraphs("a\r\n\r\nb\n\n\n"))
	require.Equal(t, []string{"one\ntwo"}, splitParagraphs("  one\ntwo  "))
	require.Empty(t, splitParagraphs("\n\n"))
}
