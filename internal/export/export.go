package export

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	types "github.com/yungbote/docforge-backend/internal/domain"
	"github.com/yungbote/docforge-backend/internal/platform/apierr"
)

const (
	MIMETypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMETypePptx = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

	// PlaceholderText stands in for a section that has no content yet.
	PlaceholderText = "[Content not yet generated]"
)

type SectionSnapshot struct {
	Title    string
	Position int
	// Nil or blank means "not yet generated".
	Content *string
}

// Snapshot is the immutable input of an export.
type Snapshot struct {
	Name         string
	Topic        string
	DocumentType types.DocumentType
	Sections     []SectionSnapshot
}

// SnapshotOf copies a project and its loaded sections. Section order is kept
// as retrieved; Export applies the position ordering.
func SnapshotOf(p *types.Project) Snapshot {
	snap := Snapshot{
		Name:         p.Name,
		Topic:        p.Topic,
		DocumentType: p.DocumentType,
		Sections:     make([]SectionSnapshot, 0, len(p.Sections)),
	}
	for _, s := range p.Sections {
		if s == nil {
			continue
		}
		var content *string
		if s.Content != nil {
			c := *s.Content
			content = &c
		}
		snap.Sections = append(snap.Sections, SectionSnapshot{
			Title:    s.Title,
			Position: s.Position,
			Content:  content,
		})
	}
	return snap
}

// Renderer writes one document format.
type Renderer interface {
	Render(w io.Writer, snap Snapshot) error
	Extension() string
	MIMEType() string
}

func RendererFor(docType types.DocumentType) (Renderer, error) {
	switch docType {
	case types.DocumentTypeWord:
		return DocxRenderer{}, nil
	case types.DocumentTypeSlideDeck:
		return PptxRenderer{}, nil
	default:
		return nil, apierr.Validation("unsupported document_type %q", docType)
	}
}

// Document is a rendered export ready to stream.
type Document struct {
	Reader   *bytes.Reader
	Filename string
	MIMEType string
	Size     int64
}

func Export(snap Snapshot) (*Document, error) {
	if len(snap.Sections) == 0 {
		return nil, apierr.Precondition("project has no sections to export")
	}
	renderer, err := RendererFor(snap.DocumentType)
	if err != nil {
		return nil, err
	}

	ordered := snap
	ordered.Sections = orderSections(snap.Sections)

	var buf bytes.Buffer
	if err := renderer.Render(&buf, ordered); err != nil {
		return nil, fmt.Errorf("render %s: %w", renderer.Extension(), err)
	}
	data := buf.Bytes()
	return &Document{
		Reader:   bytes.NewReader(data),
		Filename: Filename(snap.Name, renderer.Extension()),
		MIMEType: renderer.MIMEType(),
		Size:     int64(len(data)),
	}, nil
}

// orderSections sorts by position; equal positions keep their input order.
func orderSections(in []SectionSnapshot) []SectionSnapshot {
	out := make([]SectionSnapshot, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func sectionText(s SectionSnapshot) (string, bool) {
	if s.Content == nil {
		return "", false
	}
	if strings.TrimSpace(*s.Content) == "" {
		return "", false
	}
	return *s.Content, true
}
