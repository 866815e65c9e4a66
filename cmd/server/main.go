package main

import (
	"context"
	"errors"
	"law_folder_app_go/config"
	"law_folder_app_go/db"
	"law_folder_app_go/handlers"
	"law_folder_app_go/services"
	"law_folder_app_go/services/i18n"
	"law_folder_app_go/services/jobs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations and build the summary views
	if err := db.Migrate(db.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := services.SeedAdminFromEnv(db.DB); err != nil {
		log.Printf("[WARNING] Failed to seed admin user: %v", err)
	}

	// Load translations
	if err := i18n.Load(); err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}
	i18n.SetDefault(cfg.DefaultLocale)

	// Document storage (R2 or local filesystem)
	services.InitStorage(cfg)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	handlers.RegisterRoutes(e, cfg)

	// Background jobs: view refresh, hearing reminders, session cleanup
	scheduler, err := jobs.NewScheduler(db.DB, cfg)
	if err != nil {
		log.Fatalf("Failed to schedule background jobs: %v", err)
	}
	scheduler.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[INFO] Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARNING] Server shutdown: %v", err)
	}

	// let running jobs and pending audit writes finish
	<-scheduler.Stop().Done()
	services.WaitForAudits()
}
