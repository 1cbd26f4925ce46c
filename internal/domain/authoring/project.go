package authoring

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID     `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Name         string        `gorm:"not null;column:name" json:"name"`
	DocumentType DocumentType  `gorm:"type:varchar(16);not null;column:document_type" json:"document_type"`
	Topic        string        `gorm:"type:text;not null;column:topic" json:"main_topic"`
	Status       ProjectStatus `gorm:"type:varchar(16);not null;column:status" json:"status"`

	Sections []*Section `gorm:"foreignKey:ProjectID" json:"sections"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

// HasAllContent reports whether every section has generated content.
func (p *Project) HasAllContent() bool {
	if p == nil || len(p.Sections) == 0 {
		return false
	}
	for _, s := range p.Sections {
		if !s.HasContent() {
			return false
		}
	}
	return true
}
