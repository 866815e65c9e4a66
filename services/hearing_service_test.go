package services

import (
	"context"
	"law_folder_app_go/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHearingMovesNextHearing(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db, "Hearing Client")
	folder := createTestFolder(t, db, client.ID, nil)
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	svc := NewHearingService(db)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	later := now.AddDate(0, 0, 10)
	_, err := svc.Create(ctx, CreateHearingInput{FolderID: folder.ID, ScheduledAt: later, Type: models.HearingTypeJudgment})
	require.NoError(t, err)

	sooner := now.AddDate(0, 0, 2)
	hearing, err := svc.Create(ctx, CreateHearingInput{FolderID: folder.ID, ScheduledAt: sooner, Location: " Room 4 "})
	require.NoError(t, err)
	assert.Equal(t, models.HearingTypeOther, hearing.Type)
	assert.Equal(t, "Room 4", hearing.Location)

	// past hearings are recorded but never become next_hearing
	_, err = svc.Create(ctx, CreateHearingInput{FolderID: folder.ID, ScheduledAt: now.AddDate(0, 0, -1)})
	require.NoError(t, err)

	got, err := NewFolderService(db).GetFolder(ctx, folder.ID)
	require.NoError(t, err)
	require.NotNil(t, got.NextHearing)
	assert.True(t, sooner.Equal(*got.NextHearing))

	hearings, err := svc.ListByFolder(ctx, folder.ID)
	require.NoError(t, err)
	require.Len(t, hearings, 3)
	assert.True(t, hearings[0].ScheduledAt.Before(hearings[1].ScheduledAt))

	_, err = svc.Create(ctx, CreateHearingInput{FolderID: "missing", ScheduledAt: later})
	assert.ErrorIs(t, err, ErrFolderNotFound)
}

func TestHearingSummary(t *testing.T) {
	db := setupTestDB(t)
	client := createTestClient(t, db, "Agenda Client")
	live := createTestFolder(t, db, client.ID, nil)
	gone := createTestFolder(t, db, client.ID, func(f *models.Folder) { f.IsDeleted = true })

	// Thursday; the week runs Monday 12th to Sunday 18th
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	svc := NewHearingService(db)
	svc.now = func() time.Time { return now }

	for _, h := range []models.Hearing{
		{FolderID: live.ID, ScheduledAt: now.Add(5 * time.Hour)},
		{FolderID: live.ID, ScheduledAt: now.AddDate(0, 0, 2)},
		{FolderID: live.ID, ScheduledAt: now.AddDate(0, 0, 9)},
		{FolderID: live.ID, ScheduledAt: now.Add(2 * time.Hour), Status: models.HearingStatusCancelled},
		{FolderID: gone.ID, ScheduledAt: now.Add(3 * time.Hour)},
	} {
		require.NoError(t, db.Create(&h).Error)
	}

	thisWeek := now.AddDate(0, 0, 1)
	overdue := now.AddDate(0, 0, -5)
	for _, task := range []models.Task{
		{Title: "deadline", DueDate: &thisWeek},
		{Title: "late", DueDate: &overdue},
		{Title: "done", DueDate: &thisWeek, Status: models.TaskStatusCompleted},
	} {
		require.NoError(t, db.Create(&task).Error)
	}

	summary, err := svc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Today)
	assert.Equal(t, int64(2), summary.ThisWeek)
	require.Len(t, summary.Upcoming, 3)
	assert.Equal(t, live.Code, summary.Upcoming[0].FolderCode)
	assert.Equal(t, int64(1), summary.DeadlinesThisWeek)
	assert.Equal(t, int64(1), summary.OverdueTasks)
}

func TestDueForReminder(t *testing.T) {
	db := setupTestDB(t)
	lawyer := createTestLawyer(t, db, "reminder@lawfolder.test")
	client := createTestClient(t, db, "Reminder Client")
	folder := createTestFolder(t, db, client.ID, func(f *models.Folder) { f.ResponsibleLawyerID = &lawyer.ID })
	now := time.Date(2026, 10, 15, 7, 0, 0, 0, time.UTC)
	svc := NewHearingService(db)

	inWindow := models.Hearing{FolderID: folder.ID, ScheduledAt: now.Add(30 * time.Hour)}
	tooSoon := models.Hearing{FolderID: folder.ID, ScheduledAt: now.Add(3 * time.Hour)}
	require.NoError(t, db.Create(&inWindow).Error)
	require.NoError(t, db.Create(&tooSoon).Error)

	ctx := context.Background()
	due, err := svc.DueForReminder(ctx, now.Add(24*time.Hour), now.Add(48*time.Hour))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, inWindow.ID, due[0].ID)
	require.NotNil(t, due[0].Folder)
	require.NotNil(t, due[0].Folder.ResponsibleLawyer)
	assert.Equal(t, lawyer.Email, due[0].Folder.ResponsibleLawyer.Email)

	require.NoError(t, svc.MarkReminderSent(ctx, inWindow.ID, now))
	due, err = svc.DueForReminder(ctx, now.Add(24*time.Hour), now.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, due)

	assert.ErrorIs(t, svc.MarkReminderSent(ctx, "missing", now), ErrHearingNotFound)
}
