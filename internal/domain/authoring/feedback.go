package authoring

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	SectionID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_section_user;column:section_id" json:"section_id"`
	UserID       uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_section_user;column:user_id" json:"user_id"`
	FeedbackType FeedbackType `gorm:"type:varchar(16);not null;column:feedback_type" json:"feedback_type"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Feedback) TableName() string { return "feedback" }
