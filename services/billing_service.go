package services

import (
	"context"
	"fmt"
	"law_folder_app_go/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const billingHistoryMonths = 6

// RequestsSummary is the client-requests half of the requests/billing widget
type RequestsSummary struct {
	Total    int64                         `json:"total"`
	Open     int64                         `json:"open"`
	ByStatus []models.RequestsByStatusView `json:"by_status"`
}

// BillingSummary is the billing half of the requests/billing widget
type BillingSummary struct {
	Invoiced float64                     `json:"invoiced"`
	Received float64                     `json:"received"`
	Pending  float64                     `json:"pending"`
	Months   []models.BillingMonthlyView `json:"months"`
}

// RequestsBilling combines both summaries
type RequestsBilling struct {
	Requests RequestsSummary `json:"requests"`
	Billing  BillingSummary  `json:"billing"`
}

// IsEmpty reports whether neither view holds any row
func (r *RequestsBilling) IsEmpty() bool {
	return len(r.Requests.ByStatus) == 0 && len(r.Billing.Months) == 0
}

// BillingService reads the precomputed billing and requests views.
// It never aggregates the source tables itself.
type BillingService struct {
	db *gorm.DB
}

// NewBillingService creates a billing service
func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{db: db}
}

// RequestsByStatus reads mv_requests_by_status
func (s *BillingService) RequestsByStatus(ctx context.Context) ([]models.RequestsByStatusView, error) {
	rows := []models.RequestsByStatusView{}
	if err := s.db.WithContext(ctx).Order("total DESC, status").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read requests view: %w", err)
	}
	return rows, nil
}

// BillingMonthly reads the latest months of mv_billing_monthly, oldest first
func (s *BillingService) BillingMonthly(ctx context.Context, months int) ([]models.BillingMonthlyView, error) {
	rows := []models.BillingMonthlyView{}
	if err := s.db.WithContext(ctx).Order("month DESC").Limit(months).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read billing view: %w", err)
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// GetRequestsBilling reads both views concurrently and totals them
func (s *BillingService) GetRequestsBilling(ctx context.Context) (*RequestsBilling, error) {
	var (
		requests []models.RequestsByStatusView
		billing  []models.BillingMonthlyView
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		requests, err = s.RequestsByStatus(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		billing, err = s.BillingMonthly(ctx, billingHistoryMonths)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &RequestsBilling{
		Requests: RequestsSummary{ByStatus: requests},
		Billing:  BillingSummary{Months: billing},
	}
	for _, r := range requests {
		result.Requests.Total += r.Total
		if r.Status == models.RequestStatusOpen || r.Status == models.RequestStatusInReview {
			result.Requests.Open += r.Total
		}
	}
	for _, m := range billing {
		result.Billing.Invoiced += m.Invoiced
		result.Billing.Received += m.Received
		result.Billing.Pending += m.Pending
	}
	return result, nil
}
