package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFolderLifecycle(t *testing.T) {
	f := &Folder{}
	assert.Equal(t, FolderLive, f.Lifecycle())

	f.IsDeleted = true
	assert.Equal(t, FolderDeleted, f.Lifecycle())
}

func TestFolderBeforeCreateDefaults(t *testing.T) {
	f := &Folder{Title: "Labor claim"}
	assert.NoError(t, f.BeforeCreate(nil))

	assert.NotEmpty(t, f.ID)
	assert.Equal(t, FolderStatusPending, f.Status)
	assert.NotNil(t, f.Metadata)
	assert.Empty(t, f.Metadata)

	explicit := &Folder{ID: "fixed", Status: FolderStatusActive}
	assert.NoError(t, explicit.BeforeCreate(nil))
	assert.Equal(t, "fixed", explicit.ID)
	assert.Equal(t, FolderStatusActive, explicit.Status)
}

func TestFolderEnumValidation(t *testing.T) {
	assert.True(t, IsValidFolderStatus(FolderStatusArchived))
	assert.False(t, IsValidFolderStatus("closed"))

	assert.True(t, IsValidFolderArea(AreaIntellectualProperty))
	assert.False(t, IsValidFolderArea("maritime"))
	assert.Len(t, FolderAreas, 12)
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, (&Task{Status: TaskStatusPending, DueDate: &past}).IsOverdue(now))
	assert.False(t, (&Task{Status: TaskStatusCompleted, DueDate: &past}).IsOverdue(now))
	assert.False(t, (&Task{Status: TaskStatusInProgress, DueDate: &future}).IsOverdue(now))
	assert.False(t, (&Task{Status: TaskStatusPending}).IsOverdue(now))
}

func TestAuditLogChanges(t *testing.T) {
	entry := &AuditLog{
		OldValues: `{"status":"pending","title":"A"}`,
		NewValues: `{"status":"active","title":"A","is_favorite":true}`,
	}

	changes := entry.Changes()
	assert.Len(t, changes, 2)
	assert.Equal(t, "is_favorite", changes[0].Field)
	assert.Equal(t, "status", changes[1].Field)
	assert.Equal(t, "pending", changes[1].Old)
	assert.Equal(t, "active", changes[1].New)
}
