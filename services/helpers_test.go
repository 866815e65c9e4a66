package services

import (
	"fmt"
	appdb "law_folder_app_go/db"
	"law_folder_app_go/models"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "Password123!"

// setupTestDB opens an isolated in-memory database with the full schema.
// Shared cache with a single connection keeps every goroutine (audit
// writers, errgroup fan-outs) on the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:mem_%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, appdb.Migrate(db))

	t.Cleanup(func() {
		WaitForAudits()
		sqlDB.Close()
	})
	return db
}

func createTestLawyer(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	hash, err := HashPassword(testPassword)
	require.NoError(t, err)

	user := &models.User{
		FullName: "Lawyer " + email,
		Email:    email,
		Password: hash,
		Role:     models.RoleLawyer,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestClient(t *testing.T, db *gorm.DB, name string) *models.Client {
	t.Helper()
	client := &models.Client{
		Name:     name,
		Document: "000.000.000-00",
		Type:     models.ClientTypeIndividual,
		Email:    "client@lawfolder.test",
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

// createTestFolder inserts a folder directly, bypassing the service, so
// created_at and flags can be set freely
func createTestFolder(t *testing.T, db *gorm.DB, clientID string, mutate func(*models.Folder)) *models.Folder {
	t.Helper()
	folder := &models.Folder{
		Code:     "TEST-" + uuid.New().String()[:8],
		Area:     models.AreaCivilLitigation,
		Status:   models.FolderStatusActive,
		Title:    "Test folder",
		ClientID: clientID,
	}
	if mutate != nil {
		mutate(folder)
	}
	require.NoError(t, db.Create(folder).Error)
	return folder
}

// midMonth is a fixed instant far from month boundaries
func midMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 15, 12, 0, 0, 0, now.Location())
}

func boolPtr(b bool) *bool { return &b }

func stringPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
