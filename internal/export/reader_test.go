package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func openPackage(t *testing.T, doc *Document) *zip.Reader {
	t.Helper()
	zr, err := zip.NewReader(doc.Reader, doc.Size)
	require.NoError(t, err)
	return zr
}

func readPart(t *testing.T, zr *zip.Reader, name string) []byte {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		return body
	}
	t.Fatalf("part not found: %s", name)
	return nil
}

type docxPara struct {
	Style  string
	Align  string
	Italic bool
	Bold   bool
	Size   string
	Text   string
}

// docxParagraphs walks word/document.xml; <w:br/> is reported as "\n".
func docxParagraphs(t *testing.T, body []byte) []docxPara {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(body))
	var (
		out  []docxPara
		cur  *docxPara
		inT  bool
		text strings.Builder
	)
	attr := func(se xml.StartElement) string {
		for _, a := range se.Attr {
			if a.Name.Local == "val" {
				return a.Value
			}
		}
		return ""
	}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		switch tt := tok.(type) {
		case xml.StartElement:
			switch tt.Name.Local {
			case "p":
				cur = &docxPara{}
				text.Reset()
			case "pStyle":
				cur.Style = attr(tt)
			case "jc":
				cur.Align = attr(tt)
			case "i":
				cur.Italic = true
			case "b":
				cur.Bold = true
			case "sz":
				cur.Size = attr(tt)
			case "br":
				text.WriteString("\n")
			case "t":
				inT = true
			}
		case xml.CharData:
			if inT {
				text.Write(tt)
			}
		case xml.EndElement:
			switch tt.Name.Local {
			case "t":
				inT = false
			case "p":
				cur.Text = text.String()
				out = append(out, *cur)
				cur = nil
			}
		}
	}
	return out
}

// slideShapes returns, per shape on the slide, its paragraph texts.
func slideShapes(t *testing.T, body []byte) [][]string {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(body))
	var (
		shapes [][]string
		paras  []string
		inT    bool
		text   strings.Builder
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		switch tt := tok.(type) {
		case xml.StartElement:
			switch tt.Name.Local {
			case "sp":
				paras = nil
			case "p":
				if tt.Name.Space == nsDrawingML {
					text.Reset()
				}
			case "t":
				inT = true
			}
		case xml.CharData:
			if inT {
				text.Write(tt)
			}
		case xml.EndElement:
			switch {
			case tt.Name.Local == "t":
				inT = false
			case tt.Name.Local == "p" && tt.Name.Space == nsDrawingML:
				paras = append(paras, text.String())
			case tt.Name.Local == "sp":
				shapes = append(shapes, paras)
			}
		}
	}
	return shapes
}

func slidePart(n int) string { return fmt.Sprintf("ppt/slides/slide%d.xml", n) }
