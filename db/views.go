package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"law_folder_app_go/models"

	"gorm.io/gorm"
)

// SQLite has no materialized views, so the dashboard reads summary
// tables that RefreshViews rebuilds from the source tables.
const (
	refreshBillingSQL = `
		INSERT INTO mv_billing_monthly (month, invoiced, received, pending)
		SELECT strftime('%Y-%m', issued_at) AS month,
		       COALESCE(SUM(amount), 0),
		       COALESCE(SUM(CASE WHEN status = 'paid' THEN amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN status <> 'paid' THEN amount ELSE 0 END), 0)
		FROM invoices
		GROUP BY strftime('%Y-%m', issued_at)`

	refreshRequestsSQL = `
		INSERT INTO mv_requests_by_status (status, total)
		SELECT status, COUNT(*)
		FROM client_requests
		GROUP BY status`
)

// CreateViews creates the materialized view tables
func CreateViews(database *gorm.DB) error {
	if err := database.AutoMigrate(&models.BillingMonthlyView{}, &models.RequestsByStatusView{}); err != nil {
		return fmt.Errorf("failed to create materialized views: %w", err)
	}
	return nil
}

// RefreshViews rebuilds every materialized view inside one transaction
func RefreshViews(ctx context.Context, database *gorm.DB) error {
	start := time.Now()

	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM mv_billing_monthly").Error; err != nil {
			return err
		}
		if err := tx.Exec(refreshBillingSQL).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM mv_requests_by_status").Error; err != nil {
			return err
		}
		return tx.Exec(refreshRequestsSQL).Error
	})
	if err != nil {
		return fmt.Errorf("failed to refresh materialized views: %w", err)
	}

	log.Printf("[JOBS] Materialized views refreshed in %s", time.Since(start))
	return nil
}
