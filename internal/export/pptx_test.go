package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	types "github.com/yungbote/docforge-backend/internal/domain"
)

func TestPptxSlides(t *testing.T) {
	doc, err := Export(Snapshot{
		Name:         "Launch Plan",
		Topic:        "Go-to-market",
		DocumentType: types.DocumentTypeSlideDeck,
		Sections: []SectionSnapshot{
			{Title: "Goals", Position: 0, Content: ptr("• Grow revenue\n\n- Expand reach\n* Hire team\n**Bold** claim\nPlain line")},
			{Title: "Risks", Position: 1, Content: ptr("•   Churn")},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Launch_Plan.pptx", doc.Filename)
	require.Equal(t, MIMETypePptx, doc.MIMEType)

	zr := openPackage(t, doc)
	pres := string(readPart(t, zr, "ppt/presentation.xml"))
	require.Contains(t, pres, `<p:sldSz cx="9144000" cy="6858000"`)
	require.Equal(t, 3, strings.Count(pres, "<p:sldId "))

	title := slideShapes(t, readPart(t, zr, slidePart(1)))
	require.Equal(t, [][]string{{"Launch Plan"}, {"Go-to-market"}}, title)

	goals := slideShapes(t, readPart(t, zr, slidePart(2)))
	require.Equal(t, []string{"Goals"}, goals[0])
	require.Equal(t, []string{"Grow revenue", "Expand reach", "Hire team", "Bold claim", "Plain line"}, goals[1])

	risks := slideShapes(t, readPart(t, zr, slidePart(3)))
	require.Equal(t, []string{"Churn"}, risks[1])

	raw := string(readPart(t, zr, slidePart(2)))
	require.Contains(t, raw, `sz="1800"`)
	require.Contains(t, raw, `b="1"`)

	rels := string(readPart(t, zr, "ppt/slides/_rels/slide1.xml.rels"))
	require.Contains(t, rels, "slideLayout1.xml")
	rels = string(readPart(t, zr, "ppt/slides/_rels/slide2.xml.rels"))
	require.Contains(t, rels, "slideLayout2.xml")

	ct := string(readPart(t, zr, "[Content_Types].xml"))
	require.Contains(t, ct, "/ppt/slides/slide3.xml")
	readPart(t, zr, "ppt/theme/theme1.xml")
	readPart(t, zr, "ppt/slideMasters/slideMaster1.xml")
}

func TestStripBullet(t *testing.T) {
	cases := map[string]string{
		"• point":      "point",
		"- point":      "point",
		"* point":      "point",
		"**bold** end": "**bold** end",
		"plain":        "plain",
		"•":            "",
	}
	for in, want := range cases {
		require.Equal(t, want, stripBullet(in), in)
	}
}
