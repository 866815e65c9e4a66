package services

import (
	"context"
	"fmt"
	"law_folder_app_go/models"
	"strings"
	"time"

	"gorm.io/gorm"
)

// DailyCount is the number of movements recorded on one day (yyyy-MM-dd, UTC)
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// MovementService records procedural activity on folders
type MovementService struct {
	db      *gorm.DB
	folders *FolderService
	now     func() time.Time
}

// NewMovementService creates a movement service
func NewMovementService(db *gorm.DB) *MovementService {
	return &MovementService{db: db, folders: NewFolderService(db), now: time.Now}
}

// Record adds a movement to a live folder
func (s *MovementService) Record(ctx context.Context, folderID, description, source string, occurredAt time.Time) (*models.Movement, error) {
	if _, err := s.folders.GetFolder(ctx, folderID); err != nil {
		return nil, err
	}

	movement := models.Movement{
		FolderID:    folderID,
		Description: sanitizeText(strings.TrimSpace(description)),
		OccurredAt:  occurredAt,
		Source:      source,
	}
	if err := s.db.WithContext(ctx).Create(&movement).Error; err != nil {
		return nil, fmt.Errorf("failed to record movement: %w", err)
	}
	return &movement, nil
}

// ListByFolder returns the movements of a folder, most recent first
func (s *MovementService) ListByFolder(ctx context.Context, folderID string) ([]models.Movement, error) {
	movements := []models.Movement{}
	err := s.db.WithContext(ctx).
		Where("folder_id = ?", folderID).
		Order("occurred_at DESC").
		Find(&movements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movements: %w", err)
	}
	return movements, nil
}

// DailyCounts returns one entry per day for the trailing window, oldest
// first, with days without movements filled with zero
func (s *MovementService) DailyCounts(ctx context.Context, days int) ([]DailyCount, error) {
	today := s.now().UTC()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	since := today.AddDate(0, 0, -(days - 1))

	var rows []DailyCount
	err := s.db.WithContext(ctx).Model(&models.Movement{}).
		Select("date(occurred_at) AS date, COUNT(*) AS count").
		Where("occurred_at >= ?", since).
		Group("date(occurred_at)").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count movements: %w", err)
	}

	byDay := make(map[string]int64, len(rows))
	for _, r := range rows {
		byDay[r.Date] = r.Count
	}

	counts := make([]DailyCount, 0, days)
	for d := since; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		counts = append(counts, DailyCount{Date: key, Count: byDay[key]})
	}
	return counts, nil
}
