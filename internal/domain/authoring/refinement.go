package authoring

import (
	"time"

	"github.com/google/uuid"
)

// Refinement is an append-only record of one revision request.
type Refinement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SectionID   uuid.UUID `gorm:"type:uuid;not null;index;column:section_id" json:"section_id"`
	Instruction string    `gorm:"type:text;not null;column:instruction" json:"refinement_prompt"`
	Result      string    `gorm:"type:text;not null;column:result" json:"refined_content"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (Refinement) TableName() string { return "refinements" }
