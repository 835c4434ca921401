package main

// Run database migrations:
//   go run ./cmd/migrate            # up
//   go run ./cmd/migrate status
//   go run ./cmd/migrate down

import (
	"context"
	"log"
	"os"
	"strings"

	"srtm-backend/internal/shared/config"
	"srtm-backend/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}
	command := "up"
	if len(os.Args) > 1 {
		command = strings.ToLower(strings.TrimSpace(os.Args[1]))
	}
	ctx := context.Background()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFor(db.MigratePool))
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer sqlDB.Close()

	if err := db.Migrate(ctx, sqlDB, command); err != nil {
		log.Printf("migrate %s failed: %v", command, err)
		sqlDB.Close()
		os.Exit(1)
	}
}
