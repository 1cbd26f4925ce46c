package authoring

import "strings"

type DocumentType string

const (
	DocumentTypeWord      DocumentType = "docx"
	DocumentTypeSlideDeck DocumentType = "pptx"
)

func (d DocumentType) Valid() bool {
	return d == DocumentTypeWord || d == DocumentTypeSlideDeck
}

// Label is the product name used in prompts.
func (d DocumentType) Label() string {
	if d == DocumentTypeSlideDeck {
		return "PowerPoint presentation"
	}
	return "Word document"
}

// ParseDocumentType accepts the stored values and the descriptive aliases.
func ParseDocumentType(raw string) (DocumentType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "docx", "word":
		return DocumentTypeWord, true
	case "pptx", "slidedeck", "slides":
		return DocumentTypeSlideDeck, true
	default:
		return "", false
	}
}

type ProjectStatus string

const (
	StatusDraft      ProjectStatus = "draft"
	StatusGenerating ProjectStatus = "generating"
	StatusCompleted  ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusGenerating, StatusCompleted:
		return true
	}
	return false
}

func ParseProjectStatus(raw string) (ProjectStatus, bool) {
	s := ProjectStatus(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

var statusTransitions = map[ProjectStatus][]ProjectStatus{
	StatusDraft:      {StatusGenerating},
	StatusGenerating: {StatusCompleted},
	StatusCompleted:  {StatusGenerating},
}

// CanTransition reports whether from -> to is an edge of the status machine.
// Staying in the same status is always allowed.
func CanTransition(from, to ProjectStatus) bool {
	if from == to {
		return from.Valid()
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type FeedbackType string

const (
	FeedbackLike    FeedbackType = "like"
	FeedbackDislike FeedbackType = "dislike"
)

func ParseFeedbackType(raw string) (FeedbackType, bool) {
	switch FeedbackType(strings.ToLower(strings.TrimSpace(raw))) {
	case FeedbackLike:
		return FeedbackLike, true
	case FeedbackDislike:
		return FeedbackDislike, true
	}
	return "", false
}
