package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice status constants
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

// Client request status constants
const (
	RequestStatusOpen     = "open"
	RequestStatusInReview = "in_review"
	RequestStatusAnswered = "answered"
	RequestStatusClosed   = "closed"
)

// Invoice is a fee charged to a client, optionally for a specific folder
type Invoice struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientID string  `gorm:"type:uuid;not null;index" json:"client_id"`
	FolderID *string `gorm:"type:uuid;index" json:"folder_id,omitempty"`

	Amount   float64    `gorm:"type:decimal(15,2);not null" json:"amount"`
	Status   string     `gorm:"size:20;not null;default:pending;index" json:"status"`
	IssuedAt time.Time  `gorm:"not null;index" json:"issued_at"`
	PaidAt   *time.Time `json:"paid_at,omitempty"`
}

// BeforeCreate hook to generate UUID
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.IssuedAt.IsZero() {
		i.IssuedAt = time.Now()
	}
	return nil
}

// TableName specifies the table name for Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// ClientRequest is a question or demand raised by a client
type ClientRequest struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientID string  `gorm:"type:uuid;not null;index" json:"client_id"`
	FolderID *string `gorm:"type:uuid;index" json:"folder_id,omitempty"`
	Subject  string  `gorm:"not null" json:"subject"`
	Status   string  `gorm:"size:20;not null;default:open;index" json:"status"`
}

// BeforeCreate hook to generate UUID
func (r *ClientRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for ClientRequest model
func (ClientRequest) TableName() string {
	return "client_requests"
}

// BillingMonthlyView is a row of the mv_billing_monthly summary table
type BillingMonthlyView struct {
	Month    string  `gorm:"primaryKey;size:7" json:"month"` // yyyy-MM
	Invoiced float64 `json:"invoiced"`
	Received float64 `json:"received"`
	Pending  float64 `json:"pending"`
}

// TableName specifies the materialized view table
func (BillingMonthlyView) TableName() string {
	return "mv_billing_monthly"
}

// RequestsByStatusView is a row of the mv_requests_by_status summary table
type RequestsByStatusView struct {
	Status string `gorm:"primaryKey;size:20" json:"status"`
	Total  int64  `json:"total"`
}

// TableName specifies the materialized view table
func (RequestsByStatusView) TableName() string {
	return "mv_requests_by_status"
}
