package services

import (
	"context"
	"errors"
	"fmt"
	"law_folder_app_go/models"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var ErrHearingNotFound = errors.New("hearing not found")

const upcomingHearingsLimit = 5

// UpcomingHearing is a hearing row of the dashboard agenda
type UpcomingHearing struct {
	ID          string    `json:"id"`
	FolderID    string    `json:"folder_id"`
	FolderCode  string    `json:"folder_code"`
	FolderTitle string    `json:"folder_title"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Type        string    `json:"type"`
	Location    string    `json:"location"`
}

// HearingSummary is the agenda widget: hearings and deadlines
type HearingSummary struct {
	Today             int64             `json:"today"`
	ThisWeek          int64             `json:"this_week"`
	Upcoming          []UpcomingHearing `json:"upcoming"`
	DeadlinesThisWeek int64             `json:"deadlines_this_week"`
	OverdueTasks      int64             `json:"overdue_tasks"`
}

// CreateHearingInput holds the fields accepted when scheduling a hearing
type CreateHearingInput struct {
	FolderID    string
	ScheduledAt time.Time
	Type        string
	Location    string
	Notes       string
}

// HearingService schedules and summarises hearings
type HearingService struct {
	db      *gorm.DB
	folders *FolderService
	now     func() time.Time
}

// NewHearingService creates a hearing service
func NewHearingService(db *gorm.DB) *HearingService {
	return &HearingService{db: db, folders: NewFolderService(db), now: time.Now}
}

// Create schedules a hearing on a live folder and moves the folder's
// next_hearing forward when the new one comes first
func (s *HearingService) Create(ctx context.Context, input CreateHearingInput) (*models.Hearing, error) {
	folder, err := s.folders.GetFolder(ctx, input.FolderID)
	if err != nil {
		return nil, err
	}

	hearing := models.Hearing{
		FolderID:    folder.ID,
		ScheduledAt: input.ScheduledAt,
		Type:        input.Type,
		Location:    strings.TrimSpace(input.Location),
		Notes:       sanitizeText(input.Notes),
		Status:      models.HearingStatusScheduled,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&hearing).Error; err != nil {
			return err
		}
		if hearing.ScheduledAt.After(s.now()) &&
			(folder.NextHearing == nil || hearing.ScheduledAt.Before(*folder.NextHearing)) {
			return tx.Model(&models.Folder{}).
				Where("id = ?", folder.ID).
				Update("next_hearing", hearing.ScheduledAt).Error
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create hearing: %w", err)
	}

	auditFromContext(ctx, s.db, models.AuditActionCreate, models.AuditResourceHearing,
		hearing.ID, folder.Code, "Hearing scheduled", nil, hearing)

	return &hearing, nil
}

// ListByFolder returns the hearings of a folder in chronological order
func (s *HearingService) ListByFolder(ctx context.Context, folderID string) ([]models.Hearing, error) {
	hearings := []models.Hearing{}
	err := s.db.WithContext(ctx).
		Where("folder_id = ?", folderID).
		Order("scheduled_at ASC").
		Find(&hearings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hearings: %w", err)
	}
	return hearings, nil
}

// scheduled restricts to upcoming hearings on live folders
func (s *HearingService) scheduled(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Hearing{}).
		Joins("JOIN folders ON folders.id = hearings.folder_id").
		Scopes(models.LiveFolders).
		Where("hearings.status = ?", models.HearingStatusScheduled)
}

// GetSummary builds the agenda: hearings today and this week, the next
// five, and task deadlines
func (s *HearingService) GetSummary(ctx context.Context) (*HearingSummary, error) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekStart := startOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	summary := &HearingSummary{Upcoming: []UpcomingHearing{}}

	var g errgroup.Group
	g.Go(func() error {
		return s.scheduled(ctx).
			Where("hearings.scheduled_at >= ? AND hearings.scheduled_at < ?", dayStart, dayEnd).
			Count(&summary.Today).Error
	})
	g.Go(func() error {
		return s.scheduled(ctx).
			Where("hearings.scheduled_at >= ? AND hearings.scheduled_at < ?", weekStart, weekEnd).
			Count(&summary.ThisWeek).Error
	})
	g.Go(func() error {
		return s.scheduled(ctx).
			Select("hearings.id, hearings.folder_id, folders.code AS folder_code, folders.title AS folder_title, hearings.scheduled_at, hearings.type, hearings.location").
			Where("hearings.scheduled_at >= ?", now).
			Order("hearings.scheduled_at ASC").
			Limit(upcomingHearingsLimit).
			Scan(&summary.Upcoming).Error
	})
	g.Go(func() error {
		return s.db.WithContext(ctx).Model(&models.Task{}).
			Where("status <> ? AND due_date >= ? AND due_date < ?", models.TaskStatusCompleted, weekStart, weekEnd).
			Count(&summary.DeadlinesThisWeek).Error
	})
	g.Go(func() error {
		return s.db.WithContext(ctx).Model(&models.Task{}).
			Where("status <> ? AND due_date IS NOT NULL AND due_date < ?", models.TaskStatusCompleted, now).
			Count(&summary.OverdueTasks).Error
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build hearing summary: %w", err)
	}
	return summary, nil
}

// DueForReminder returns scheduled hearings in [from, to) that have not
// been reminded yet, with folder and responsible lawyer loaded
func (s *HearingService) DueForReminder(ctx context.Context, from, to time.Time) ([]models.Hearing, error) {
	var hearings []models.Hearing
	err := s.db.WithContext(ctx).
		Preload("Folder").
		Preload("Folder.ResponsibleLawyer").
		Joins("JOIN folders ON folders.id = hearings.folder_id").
		Scopes(models.LiveFolders).
		Where("hearings.status = ?", models.HearingStatusScheduled).
		Where("hearings.reminder_sent_at IS NULL").
		Where("hearings.scheduled_at >= ? AND hearings.scheduled_at < ?", from, to).
		Order("hearings.scheduled_at ASC").
		Find(&hearings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hearings due for reminder: %w", err)
	}
	return hearings, nil
}

// MarkReminderSent stamps reminder_sent_at so the hearing is not reminded twice
func (s *HearingService) MarkReminderSent(ctx context.Context, id string, at time.Time) error {
	result := s.db.WithContext(ctx).Model(&models.Hearing{}).
		Where("id = ?", id).
		Update("reminder_sent_at", at)
	if result.Error != nil {
		return fmt.Errorf("failed to mark reminder: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrHearingNotFound
	}
	return nil
}
