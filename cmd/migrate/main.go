package main

import (
	"log"

	"github.com/joho/godotenv"

	"fintrack/internal/infrastructure/postgres"
	"fintrack/internal/shared/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := postgres.RunMigrations(cfg.Database.ConnectionString()); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations applied")
}
