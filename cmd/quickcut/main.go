package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/quickcut-dev/quickcut/db"
	"github.com/quickcut-dev/quickcut/internal/auth"
	"github.com/quickcut-dev/quickcut/internal/config"
	"github.com/quickcut-dev/quickcut/internal/reconcile"
	"github.com/quickcut-dev/quickcut/internal/router"
	"github.com/quickcut-dev/quickcut/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.LoadConfig()

	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if err := db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := reconcile.Configure(cfg.Columns); err != nil {
		log.Fatalf("Board column configuration error: %v", err)
	}

	services.ConfigureBoard(cfg.MondayAPIURL, cfg.MondayAPIToken, cfg.MondayBoardID)

	if !services.BoardEnabled() {
		log.Println("MONDAY_API_TOKEN not set, board mirroring disabled")
	}

	r := router.NewRouter()

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
