package jobs

import (
	"context"
	"law_folder_app_go/config"
	"law_folder_app_go/services"
	"log"
	"time"

	"gorm.io/gorm"
)

// ReminderSummary reports what one reminder run did
type ReminderSummary struct {
	Found   int
	Sent    int
	Skipped int
	Failed  int
}

// SendHearingReminders e-mails the responsible lawyer of every hearing
// starting in the next 24-48 hours that has not been reminded yet
func SendHearingReminders(ctx context.Context, database *gorm.DB, cfg *config.Config, now time.Time) ReminderSummary {
	log.Println("[JOBS] Starting hearing reminder job...")

	hearings := services.NewHearingService(database)
	due, err := hearings.DueForReminder(ctx, now.Add(24*time.Hour), now.Add(48*time.Hour))
	if err != nil {
		log.Printf("[JOBS] Error fetching hearings for reminders: %v", err)
		return ReminderSummary{}
	}

	summary := ReminderSummary{Found: len(due)}
	log.Printf("[JOBS] Found %d hearings to remind", len(due))

	lang := cfg.DefaultLocale
	for _, h := range due {
		if h.Folder == nil || h.Folder.ResponsibleLawyer == nil || h.Folder.ResponsibleLawyer.Email == "" {
			log.Printf("[JOBS] Hearing %s has no responsible lawyer, skipping", h.ID)
			summary.Skipped++
			continue
		}

		lawyer := h.Folder.ResponsibleLawyer
		email, err := services.BuildHearingReminderEmail(lawyer.Email, services.HearingReminderData{
			LawyerName:  lawyer.FullName,
			FolderID:    h.Folder.ID,
			FolderCode:  h.Folder.Code,
			FolderTitle: h.Folder.Title,
			HearingType: h.Type,
			ScheduledAt: h.ScheduledAt,
			Location:    h.Location,
			AppURL:      cfg.AppURL,
		}, lang)
		if err != nil {
			log.Printf("[JOBS] Failed to build reminder for hearing %s: %v", h.ID, err)
			summary.Failed++
			continue
		}

		if err := services.SendEmail(cfg, email); err != nil {
			log.Printf("[JOBS] Failed to send reminder for hearing %s: %v", h.ID, err)
			summary.Failed++
			continue
		}

		if err := hearings.MarkReminderSent(ctx, h.ID, time.Now().UTC()); err != nil {
			log.Printf("[JOBS] Failed to mark reminder for hearing %s: %v", h.ID, err)
			summary.Failed++
			continue
		}
		summary.Sent++
		log.Printf("[JOBS] Sent reminder for hearing %s (%s)", h.ID, h.Folder.Code)
	}

	log.Printf("[JOBS] Hearing reminder job completed: %d sent, %d skipped, %d failed", summary.Sent, summary.Skipped, summary.Failed)
	return summary
}
