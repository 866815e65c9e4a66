package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Movement is a procedural event recorded on a folder (filing, decision, dispatch...)
type Movement struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	FolderID    string    `gorm:"type:uuid;not null;index" json:"folder_id"`
	Description string    `gorm:"type:text;not null" json:"description"`
	OccurredAt  time.Time `gorm:"not null;index" json:"occurred_at"`
	Source      string    `gorm:"size:30" json:"source,omitempty"` // manual, court feed...
}

// BeforeCreate hook to generate UUID and default the event time
func (m *Movement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.OccurredAt.IsZero() {
		m.OccurredAt = time.Now()
	}
	return nil
}

// TableName specifies the table name for Movement model
func (Movement) TableName() string {
	return "movements"
}
