package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task status constants
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

// Task is a piece of work, usually tied to a folder, with an optional deadline
type Task struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FolderID     *string `gorm:"type:uuid;index" json:"folder_id,omitempty"`
	AssignedToID *string `gorm:"type:uuid;index" json:"assigned_to_id,omitempty"`

	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	Status      string     `gorm:"size:20;not null;default:pending;index" json:"status"`
	DueDate     *time.Time `gorm:"index" json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// BeforeCreate hook to generate UUID
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
	return nil
}

// TableName specifies the table name for Task model
func (Task) TableName() string {
	return "tasks"
}

// IsOverdue reports whether an open task is past its due date
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Status != TaskStatusCompleted && t.DueDate != nil && t.DueDate.Before(now)
}

// IsValidTaskStatus checks if the status is valid
func IsValidTaskStatus(status string) bool {
	return status == TaskStatusPending || status == TaskStatusInProgress || status == TaskStatusCompleted
}
