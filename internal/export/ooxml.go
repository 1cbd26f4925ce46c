package export

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strings"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

	nsRelationships   = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes    = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsOfficeRels      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	relOfficeDocument = nsOfficeRels + "/officeDocument"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	ctCoreProps       = "application/vnd.openxmlformats-package.core-properties+xml"
	ctRelationships   = "application/vnd.openxmlformats-package.relationships+xml"
)

// partWriter writes package parts into a zip. Entries carry no timestamps so
// identical snapshots produce identical bytes.
type partWriter struct {
	zw *zip.Writer
}

func newPartWriter(w io.Writer) *partWriter {
	return &partWriter{zw: zip.NewWriter(w)}
}

func (p *partWriter) add(name, body string) error {
	fw, err := p.zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = io.WriteString(fw, body)
	return err
}

func (p *partWriter) close() error { return p.zw.Close() }

type relationship struct {
	ID     string
	Type   string
	Target string
}

func relationshipsXML(rels []relationship) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="` + nsRelationships + `">`)
	for _, r := range rels {
		b.WriteString(`<Relationship Id="` + r.ID + `" Type="` + r.Type + `" Target="` + esc(r.Target) + `"/>`)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

type contentOverride struct {
	PartName    string
	ContentType string
}

func contentTypesXML(overrides []contentOverride) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="` + nsContentTypes + `">`)
	b.WriteString(`<Default Extension="rels" ContentType="` + ctRelationships + `"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	for _, o := range overrides {
		b.WriteString(`<Override PartName="` + o.PartName + `" ContentType="` + o.ContentType + `"/>`)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

func corePropsXML(title, subject string) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">`)
	b.WriteString(`<dc:title>` + esc(title) + `</dc:title>`)
	b.WriteString(`<dc:subject>` + esc(subject) + `</dc:subject>`)
	b.WriteString(`<dc:creator>docforge</dc:creator>`)
	b.WriteString(`</cp:coreProperties>`)
	return b.String()
}

func esc(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
