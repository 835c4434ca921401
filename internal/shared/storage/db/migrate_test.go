package db

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestEmbeddedMigrationsHaveGooseDirectives(t *testing.T) {
	matches, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("expected embedded migrations")
	}
	for _, name := range matches {
		data, err := fs.ReadFile(migrationFiles, name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if !strings.Contains(string(data), "-- +goose Up") || !strings.Contains(string(data), "-- +goose Down") {
			t.Fatalf("%s is missing goose directives", name)
		}
	}
}

func TestRunMigrationsNilDatabaseIsNoop(t *testing.T) {
	if err := RunMigrations(context.Background(), nil); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestMigrateRejectsUnknownCommand(t *testing.T) {
	err := Migrate(context.Background(), nil, "drop-everything")
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if err := Migrate(context.Background(), nil, "status"); err == nil {
		t.Fatalf("expected an error without a database")
	}
}
