package services

import (
	"context"
	"law_folder_app_go/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAdminFromEnv(t *testing.T) {
	t.Run("creates admin when env vars are set", func(t *testing.T) {
		db := setupTestDB(t)
		t.Setenv("ADMIN_EMAIL", "Admin@LexFolders.test")
		t.Setenv("ADMIN_PASSWORD", "StrongPass123!")
		t.Setenv("ADMIN_NAME", "Test Admin")

		require.NoError(t, SeedAdminFromEnv(db))

		var user models.User
		require.NoError(t, db.Where("email = ?", "admin@lexfolders.test").First(&user).Error)
		assert.Equal(t, models.RoleAdmin, user.Role)
		assert.Equal(t, "Test Admin", user.FullName)
		assert.True(t, CheckPassword("StrongPass123!", user.Password))

		// second run is a no-op
		require.NoError(t, SeedAdminFromEnv(db))
		var count int64
		db.Model(&models.User{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("skips when env vars are missing", func(t *testing.T) {
		db := setupTestDB(t)
		t.Setenv("ADMIN_EMAIL", "")
		t.Setenv("ADMIN_PASSWORD", "")

		require.NoError(t, SeedAdminFromEnv(db))
		var count int64
		db.Model(&models.User{}).Count(&count)
		assert.Zero(t, count)
	})
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	db := setupTestDB(t)
	_, err := CreateUser(db, "X", "x@lexfolders.test", "pw", "superadmin")
	assert.Error(t, err)
}

func TestSeedDemoData(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	ctx := context.Background()

	require.NoError(t, SeedDemoData(ctx, db, now))

	var folders []models.Folder
	require.NoError(t, db.Find(&folders).Error)
	assert.Len(t, folders, 6)

	// seeded data is live, not demo, on the dashboard
	dash := NewDashboardService(db)
	clock := func() time.Time { return now }
	dash.now, dash.folders.now, dash.clients.now = clock, clock, clock
	dash.hearings.now, dash.tasks.now, dash.movements.now = clock, clock, clock

	data := dash.GetDashboardData(ctx)
	assert.False(t, data.ActiveFolders.Demo)
	assert.Equal(t, int64(4), data.ActiveFolders.Data.Active)
	assert.False(t, data.Birthdays.Demo)
	assert.Len(t, data.Birthdays.Data, 2)
	assert.False(t, data.Hearings.Demo)
	assert.Equal(t, int64(1), data.Hearings.Data.Today)
	assert.False(t, data.RequestsBilling.Demo)
	assert.Equal(t, int64(3), data.RequestsBilling.Data.Requests.Total)
	assert.False(t, data.Tasks.Demo)
	assert.Equal(t, int64(4), data.Tasks.Data.Total)

	var favorite models.Folder
	require.NoError(t, db.First(&favorite, "code = ?", "PROC-DEMO-00001").Error)
	assert.True(t, favorite.IsFavorite)
	require.NotNil(t, favorite.NextHearing)

	// a second run leaves the data alone
	require.NoError(t, SeedDemoData(ctx, db, now))
	var count int64
	db.Model(&models.Folder{}).Count(&count)
	assert.Equal(t, int64(6), count)
}
