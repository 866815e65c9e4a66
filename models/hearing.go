package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hearing status constants
const (
	HearingStatusScheduled = "scheduled"
	HearingStatusHeld      = "held"
	HearingStatusCancelled = "cancelled"
)

// Hearing types
const (
	HearingTypeConciliation = "conciliation"
	HearingTypeInstruction  = "instruction"
	HearingTypeJudgment     = "judgment"
	HearingTypeOther        = "other"
)

// Hearing is a court session scheduled for a folder
type Hearing struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FolderID string  `gorm:"type:uuid;not null;index" json:"folder_id"`
	Folder   *Folder `gorm:"foreignKey:FolderID;-:migration" json:"folder,omitempty"`

	ScheduledAt time.Time `gorm:"not null;index" json:"scheduled_at"`
	Type        string    `gorm:"size:30;not null;default:other" json:"type"`
	Location    string    `json:"location"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	Status      string    `gorm:"size:20;not null;default:scheduled;index" json:"status"`

	ReminderSentAt *time.Time `json:"reminder_sent_at,omitempty"`
}

// BeforeCreate hook to generate UUID
func (h *Hearing) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if h.Status == "" {
		h.Status = HearingStatusScheduled
	}
	if h.Type == "" {
		h.Type = HearingTypeOther
	}
	return nil
}

// TableName specifies the table name for Hearing model
func (Hearing) TableName() string {
	return "hearings"
}

// IsValidHearingType checks if the hearing type is valid
func IsValidHearingType(hearingType string) bool {
	switch hearingType {
	case HearingTypeConciliation, HearingTypeInstruction, HearingTypeJudgment, HearingTypeOther:
		return true
	}
	return false
}
