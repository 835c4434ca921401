package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsDir = "migrations"

var (
	ErrUnknownCommand = errors.New("unknown migration command")

	gooseOnce sync.Once
	gooseErr  error
)

// Commands accepted by Migrate.
var migrationCommands = map[string]bool{
	"up":      true,
	"down":    true,
	"redo":    true,
	"status":  true,
	"version": true,
}

func prepareGoose() error {
	gooseOnce.Do(func() {
		goose.SetBaseFS(migrationFiles)
		gooseErr = goose.SetDialect("postgres")
	})
	return gooseErr
}

// RunMigrations applies embedded SQL migrations via goose. If database is nil, it's a no-op.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	if database == nil {
		return nil
	}
	if err := prepareGoose(); err != nil {
		return err
	}
	return goose.UpContext(ctx, database, migrationsDir)
}

// Migrate runs one goose command against the embedded migrations.
func Migrate(ctx context.Context, database *sql.DB, command string) error {
	if !migrationCommands[command] {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
	if database == nil {
		return errors.New("migrate: database is required")
	}
	if err := prepareGoose(); err != nil {
		return err
	}
	return goose.RunContext(ctx, command, database, migrationsDir)
}
