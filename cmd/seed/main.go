package main

import (
	"context"
	"law_folder_app_go/config"
	"law_folder_app_go/db"
	"law_folder_app_go/services"
	"log"
	"time"
)

func main() {
	cfg := config.Load()

	if err := db.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(db.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := services.SeedAdminFromEnv(db.DB); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := services.SeedDemoData(ctx, db.DB, time.Now()); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	log.Printf("[SEED] Done. Demo lawyers log in with password %q", services.DemoPassword)
}
