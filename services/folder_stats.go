package services

import (
	"context"
	"fmt"
	"law_folder_app_go/models"
	"time"

	"golang.org/x/sync/errgroup"
)

// StatusCount is one row of the by-status breakdown
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// AreaCount is one row of the by-area breakdown
type AreaCount struct {
	Area  string `json:"area"`
	Count int64  `json:"count"`
}

// MonthCount is the number of folders opened in a month (yyyy-MM)
type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// FolderStats is the statistics payload for the live folder set
type FolderStats struct {
	TotalFolders     int64         `json:"total_folders"`
	ActiveFolders    int64         `json:"active_folders"`
	CompletedFolders int64         `json:"completed_folders"`
	NewThisMonth     int64         `json:"new_this_month"`
	ByStatus         []StatusCount `json:"by_status"`
	ByArea           []AreaCount   `json:"by_area"`
	MonthlyEvolution []MonthCount  `json:"monthly_evolution"`
}

// HistoryPoint is one month of the dashboard folder widget
type HistoryPoint struct {
	Month string `json:"month"`
	Value int64  `json:"value"`
}

// DashboardFolders is the widget projection of FolderStats
type DashboardFolders struct {
	Active       int64          `json:"active"`
	NewThisMonth int64          `json:"newThisMonth"`
	History      []HistoryPoint `json:"history"`
}

// monthBounds returns the first and last instant of the month containing t
func monthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// CountActive counts live folders with status active
func (s *FolderService) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := s.folders(ctx).Where("folders.status = ?", models.FolderStatusActive).Count(&count).Error
	return count, err
}

// CountByStatus groups live folders by status. Absent statuses are omitted.
func (s *FolderService) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	rows := []StatusCount{}
	err := s.folders(ctx).
		Select("folders.status AS status, COUNT(*) AS count").
		Group("folders.status").
		Order("folders.status").
		Scan(&rows).Error
	return rows, err
}

// CountByArea groups live folders by area, largest first. Absent areas are omitted.
func (s *FolderService) CountByArea(ctx context.Context) ([]AreaCount, error) {
	rows := []AreaCount{}
	err := s.folders(ctx).
		Select("folders.area AS area, COUNT(*) AS count").
		Group("folders.area").
		Order("count DESC, folders.area").
		Scan(&rows).Error
	return rows, err
}

// GetFoldersStats runs the counts, breakdowns and the six monthly range
// queries concurrently. The figures are not read from one snapshot.
func (s *FolderService) GetFoldersStats(ctx context.Context) (*FolderStats, error) {
	now := s.now()
	stats := &FolderStats{
		ByStatus:         []StatusCount{},
		ByArea:           []AreaCount{},
		MonthlyEvolution: make([]MonthCount, StatsHistoryMonths),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.folders(gctx).Count(&stats.TotalFolders).Error
	})
	g.Go(func() error {
		var err error
		stats.ActiveFolders, err = s.CountActive(gctx)
		return err
	})
	g.Go(func() error {
		return s.folders(gctx).Where("folders.status = ?", models.FolderStatusCompleted).Count(&stats.CompletedFolders).Error
	})
	g.Go(func() error {
		start, end := monthBounds(now)
		return s.folders(gctx).
			Where("folders.created_at >= ? AND folders.created_at <= ?", start, end).
			Count(&stats.NewThisMonth).Error
	})
	g.Go(func() error {
		var err error
		stats.ByStatus, err = s.CountByStatus(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.ByArea, err = s.CountByArea(gctx)
		return err
	})

	// oldest month first
	for i := 0; i < StatsHistoryMonths; i++ {
		i := i
		g.Go(func() error {
			month := time.Date(now.Year(), now.Month()-time.Month(StatsHistoryMonths-1-i), 1, 0, 0, 0, 0, now.Location())
			start, end := monthBounds(month)
			var count int64
			if err := s.folders(gctx).
				Where("folders.created_at >= ? AND folders.created_at <= ?", start, end).
				Count(&count).Error; err != nil {
				return err
			}
			stats.MonthlyEvolution[i] = MonthCount{Month: start.Format("2006-01"), Count: count}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute folder stats: %w", err)
	}
	return stats, nil
}

// GetDashboardFolders reshapes the statistics for the dashboard widget
func (s *FolderService) GetDashboardFolders(ctx context.Context) (*DashboardFolders, error) {
	stats, err := s.GetFoldersStats(ctx)
	if err != nil {
		return nil, err
	}

	history := make([]HistoryPoint, 0, len(stats.MonthlyEvolution))
	for _, m := range stats.MonthlyEvolution {
		history = append(history, HistoryPoint{Month: m.Month, Value: m.Count})
	}

	return &DashboardFolders{
		Active:       stats.ActiveFolders,
		NewThisMonth: stats.NewThisMonth,
		History:      history,
	}, nil
}
