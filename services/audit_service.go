package services

import (
	"context"
	"encoding/json"
	"law_folder_app_go/models"
	"log"
	"sync"

	"gorm.io/gorm"
)

// AuditContext contains contextual information for audit logging
type AuditContext struct {
	UserID    string
	UserName  string
	UserRole  string
	IPAddress string
	UserAgent string
}

type auditContextKey struct{}

// WithAuditContext attaches the acting user to ctx so mutations can be audited
func WithAuditContext(ctx context.Context, ac AuditContext) context.Context {
	return context.WithValue(ctx, auditContextKey{}, ac)
}

// AuditContextFrom returns the audit context attached to ctx, if any
func AuditContextFrom(ctx context.Context) (AuditContext, bool) {
	ac, ok := ctx.Value(auditContextKey{}).(AuditContext)
	return ac, ok
}

// auditWG tracks in-flight audit writes so tests and shutdown can wait on them
var auditWG sync.WaitGroup

// WaitForAudits blocks until every pending audit write has finished
func WaitForAudits() {
	auditWG.Wait()
}

// LogAuditEvent creates a new audit log entry asynchronously
func LogAuditEvent(
	db *gorm.DB,
	ctx AuditContext,
	action models.AuditAction,
	resourceType string,
	resourceID string,
	resourceName string,
	description string,
	oldValues interface{},
	newValues interface{},
) {
	auditWG.Add(1)
	// Run in goroutine to avoid blocking the request
	go func() {
		defer auditWG.Done()

		var oldJSON, newJSON string

		if oldValues != nil {
			if bytes, err := json.Marshal(oldValues); err == nil {
				oldJSON = string(bytes)
			}
		}

		if newValues != nil {
			if bytes, err := json.Marshal(newValues); err == nil {
				newJSON = string(bytes)
			}
		}

		auditLog := models.AuditLog{
			UserID:       ptrIfNotEmpty(ctx.UserID),
			UserName:     ctx.UserName,
			UserRole:     ctx.UserRole,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			ResourceName: resourceName,
			Action:       action,
			Description:  description,
			OldValues:    oldJSON,
			NewValues:    newJSON,
			IPAddress:    ctx.IPAddress,
			UserAgent:    ctx.UserAgent,
		}

		if err := db.Create(&auditLog).Error; err != nil {
			log.Printf("[AUDIT] Failed to create audit log: %v", err)
		}
	}()
}

// auditFromContext logs the event only when ctx carries an acting user
func auditFromContext(
	ctx context.Context,
	db *gorm.DB,
	action models.AuditAction,
	resourceType, resourceID, resourceName, description string,
	oldValues, newValues interface{},
) {
	ac, ok := AuditContextFrom(ctx)
	if !ok {
		return
	}
	LogAuditEvent(db, ac, action, resourceType, resourceID, resourceName, description, oldValues, newValues)
}

// ptrIfNotEmpty returns a pointer to the string if not empty, nil otherwise
func ptrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// GetResourceAuditHistory retrieves the audit history for a specific resource
func GetResourceAuditHistory(db *gorm.DB, resourceType, resourceID string) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := db.Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}
