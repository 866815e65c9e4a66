package db

import (
	"fmt"
	"log"
	"net/url"

	"law_folder_app_go/config"
	"law_folder_app_go/models"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize opens the store: a remote Turso/libSQL database when
// TURSO_DATABASE_URL is set, otherwise a local SQLite file in WAL mode
func Initialize(cfg *config.Config) error {
	logLevel := logger.Info
	if cfg.Environment == "production" {
		logLevel = logger.Warn
	}
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var err error
	if cfg.IsRemoteDB() {
		DB, err = gorm.Open(sqlite.New(sqlite.Config{
			DriverName: "libsql",
			DSN:        libsqlDSN(cfg.TursoDatabaseURL, cfg.TursoAuthToken),
		}), gormCfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Println("Database connection established (Turso/libSQL)")
		return nil
	}

	DB, err = gorm.Open(sqlite.Open(cfg.DBPath+"?_journal_mode=WAL&_busy_timeout=5000"), gormCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established (WAL mode enabled)")
	return nil
}

// libsqlDSN appends the auth token to the database URL
func libsqlDSN(rawURL, authToken string) string {
	if authToken == "" {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set("authToken", authToken)
	u.RawQuery = q.Encode()
	return u.String()
}

// AutoMigrate runs database migrations for the provided models
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// Migrate creates every table and the materialized view tables
func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(models.Migratable()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := backfillSearchText(database); err != nil {
		return err
	}
	return CreateViews(database)
}

// backfillSearchText fills search_text for folders created before the column existed
func backfillSearchText(database *gorm.DB) error {
	var folders []models.Folder
	result := database.Model(&models.Folder{}).
		Where("search_text = ''").
		FindInBatches(&folders, 200, func(tx *gorm.DB, batch int) error {
			for i := range folders {
				if err := database.Model(&models.Folder{}).
					Where("id = ?", folders[i].ID).
					UpdateColumn("search_text", folders[i].BuildSearchText()).Error; err != nil {
					return err
				}
			}
			return nil
		})
	if result.Error != nil {
		return fmt.Errorf("failed to backfill folder search text: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		log.Printf("[INFO] Backfilled search text for %d folders", result.RowsAffected)
	}
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
