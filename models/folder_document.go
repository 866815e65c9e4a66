package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FolderDocument is a file attached to a folder
type FolderDocument struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FolderID string `gorm:"type:uuid;not null;index" json:"folder_id"`

	FileName         string `gorm:"not null" json:"file_name"`
	FileOriginalName string `gorm:"not null" json:"file_original_name"`
	FilePath         string `gorm:"not null" json:"-"` // storage key, never exposed
	FileSize         int64  `gorm:"not null" json:"file_size"`
	MimeType         string `json:"mime_type,omitempty"`
	DocumentType     string `json:"document_type,omitempty"` // petition, evidence, contract...

	UploadedByID *string `gorm:"type:uuid" json:"uploaded_by_id,omitempty"`
}

// BeforeCreate hook to generate UUID
func (d *FolderDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for FolderDocument model
func (FolderDocument) TableName() string {
	return "folder_documents"
}

// GetDownloadURL returns the API path serving this document
func (d *FolderDocument) GetDownloadURL() string {
	return "/api/folders/" + d.FolderID + "/documents/" + d.ID
}
