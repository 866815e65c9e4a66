package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client type constants
const (
	ClientTypeIndividual = "individual"
	ClientTypeCompany    = "company"
)

// Client represents a person or company represented by the firm
type Client struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name      string     `gorm:"not null;index" json:"name"`
	Document  string     `gorm:"size:32;index" json:"document"` // CPF/CNPJ, national id or tax id
	Type      string     `gorm:"size:20;not null;default:individual" json:"type"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

// BeforeCreate hook to generate UUID
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Client model
func (Client) TableName() string {
	return "clients"
}

// ClientSummary is the read-only projection of a client preloaded on folders
type ClientSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Document string `json:"document"`
	Type     string `json:"type"`
}

// TableName maps the projection onto the clients table
func (ClientSummary) TableName() string {
	return "clients"
}

// IsValidClientType checks if the client type is valid
func IsValidClientType(clientType string) bool {
	return clientType == ClientTypeIndividual || clientType == ClientTypeCompany
}
