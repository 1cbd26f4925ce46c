package authoring

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Section struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index;column:project_id" json:"project_id"`
	Title     string    `gorm:"not null;column:title" json:"title"`
	Position  int       `gorm:"not null;column:position" json:"position"`
	// Nil until generated or written.
	Content *string `gorm:"type:text;column:content" json:"content"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Section) TableName() string { return "sections" }

func (s *Section) HasContent() bool {
	return s != nil && s.Content != nil && strings.TrimSpace(*s.Content) != ""
}

// ContentText returns the content or "" when absent.
func (s *Section) ContentText() string {
	if s == nil || s.Content == nil {
		return ""
	}
	return *s.Content
}
