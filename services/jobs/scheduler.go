package jobs

import (
	"context"
	"fmt"
	appdb "law_folder_app_go/db"
	"law_folder_app_go/config"
	"law_folder_app_go/services"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	sessionCleanupSchedule = "@hourly"
	jobTimeout             = 5 * time.Minute
)

// NewScheduler registers the background jobs: materialized view refresh,
// hearing reminders and expired session cleanup. The caller starts and
// stops the returned scheduler.
func NewScheduler(database *gorm.DB, cfg *config.Config) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	jobs := []struct {
		name     string
		schedule string
		run      func(ctx context.Context)
	}{
		{"refresh views", cfg.ViewRefreshSchedule, func(ctx context.Context) {
			if err := appdb.RefreshViews(ctx, database); err != nil {
				log.Printf("[JOBS] %v", err)
			}
		}},
		{"hearing reminders", cfg.ReminderSchedule, func(ctx context.Context) {
			SendHearingReminders(ctx, database, cfg, time.Now().UTC())
		}},
		{"session cleanup", sessionCleanupSchedule, func(ctx context.Context) {
			if err := services.CleanupExpiredSessions(database.WithContext(ctx)); err != nil {
				log.Printf("[JOBS] %v", err)
			}
		}},
	}

	for _, job := range jobs {
		job := job
		if _, err := c.AddFunc(job.schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			job.run(ctx)
		}); err != nil {
			return nil, fmt.Errorf("failed to schedule %s (%q): %w", job.name, job.schedule, err)
		}
		log.Printf("[JOBS] Scheduled %s: %s", job.name, job.schedule)
	}

	return c, nil
}
