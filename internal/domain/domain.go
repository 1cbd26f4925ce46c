package domain

import (
	"github.com/yungbote/docforge-backend/internal/domain/authoring"
	"github.com/yungbote/docforge-backend/internal/domain/user"
)

type User = user.User

type Project = authoring.Project
type Section = authoring.Section
type Refinement = authoring.Refinement
type Feedback = authoring.Feedback
type Comment = authoring.Comment

type DocumentType = authoring.DocumentType
type ProjectStatus = authoring.ProjectStatus
type FeedbackType = authoring.FeedbackType

const (
	DocumentTypeWord      = authoring.DocumentTypeWord
	DocumentTypeSlideDeck = authoring.DocumentTypeSlideDeck

	StatusDraft      = authoring.StatusDraft
	StatusGenerating = authoring.StatusGenerating
	StatusCompleted  = authoring.StatusCompleted

	FeedbackLike    = authoring.FeedbackLike
	FeedbackDislike = authoring.FeedbackDislike
)

// AllModels lists every persisted model in migration order.
func AllModels() []any {
	return []any{
		&User{},
		&Project{},
		&Section{},
		&Refinement{},
		&Feedback{},
		&Comment{},
	}
}
