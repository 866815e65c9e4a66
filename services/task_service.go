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

var ErrTaskNotFound = errors.New("task not found")

// TaskStats summarises the task board
type TaskStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Overdue    int64 `json:"overdue"`
}

// CreateTaskInput holds the fields accepted when creating a task
type CreateTaskInput struct {
	FolderID     *string
	AssignedToID *string
	Title        string
	Description  string
	DueDate      *time.Time
}

// TaskService manages tasks
type TaskService struct {
	db      *gorm.DB
	folders *FolderService
	now     func() time.Time
}

// NewTaskService creates a task service
func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db, folders: NewFolderService(db), now: time.Now}
}

// Create adds a task. A folder, when given, must be live.
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if input.FolderID != nil {
		if _, err := s.folders.GetFolder(ctx, *input.FolderID); err != nil {
			return nil, err
		}
	}

	task := models.Task{
		FolderID:     input.FolderID,
		AssignedToID: input.AssignedToID,
		Title:        strings.TrimSpace(input.Title),
		Description:  sanitizeText(input.Description),
		Status:       models.TaskStatusPending,
		DueDate:      input.DueDate,
	}
	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	auditFromContext(ctx, s.db, models.AuditActionCreate, models.AuditResourceTask,
		task.ID, task.Title, "Task created", nil, task)

	return &task, nil
}

// ListByFolder returns the tasks of a folder, earliest deadline first
func (s *TaskService) ListByFolder(ctx context.Context, folderID string) ([]models.Task, error) {
	tasks := []models.Task{}
	err := s.db.WithContext(ctx).
		Where("folder_id = ?", folderID).
		Order("due_date IS NULL, due_date ASC, created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	return tasks, nil
}

// UpdateStatus moves a task to another status, stamping completion time
func (s *TaskService) UpdateStatus(ctx context.Context, id, status string) (*models.Task, error) {
	var task models.Task
	if err := s.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to fetch task: %w", err)
	}

	updates := map[string]interface{}{"status": status}
	if status == models.TaskStatusCompleted {
		updates["completed_at"] = s.now()
	} else {
		updates["completed_at"] = nil
	}
	if err := s.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if err := s.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch task: %w", err)
	}

	auditFromContext(ctx, s.db, models.AuditActionUpdate, models.AuditResourceTask,
		task.ID, task.Title, "Task status changed", nil, map[string]interface{}{"status": status})

	return &task, nil
}

// GetStats counts tasks per status plus the overdue open ones
func (s *TaskService) GetStats(ctx context.Context) (*TaskStats, error) {
	stats := &TaskStats{}
	now := s.now()

	count := func(dest *int64, query func(*gorm.DB) *gorm.DB) func() error {
		return func() error {
			return query(s.db.WithContext(ctx).Model(&models.Task{})).Count(dest).Error
		}
	}
	byStatus := func(status string) func(*gorm.DB) *gorm.DB {
		return func(db *gorm.DB) *gorm.DB { return db.Where("status = ?", status) }
	}

	var g errgroup.Group
	g.Go(count(&stats.Total, func(db *gorm.DB) *gorm.DB { return db }))
	g.Go(count(&stats.Pending, byStatus(models.TaskStatusPending)))
	g.Go(count(&stats.InProgress, byStatus(models.TaskStatusInProgress)))
	g.Go(count(&stats.Completed, byStatus(models.TaskStatusCompleted)))
	g.Go(count(&stats.Overdue, func(db *gorm.DB) *gorm.DB {
		return db.Where("status <> ? AND due_date IS NOT NULL AND due_date < ?", models.TaskStatusCompleted, now)
	}))

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute task stats: %w", err)
	}
	return stats, nil
}
