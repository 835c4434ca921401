package requirements

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func sampleRequirement() Requirement {
	now := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)
	return Requirement{
		ID:            "req-1",
		Title:         "Enforce MFA",
		Description:   "All admins",
		Category:      "Identification",
		ControlFamily: "IA",
		Source:        "NIST 800-53",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func requirementRows(reqs ...Requirement) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "title", "description", "category", "control_family", "source", "created_at", "updated_at"})
	for _, r := range reqs {
		rows.AddRow(r.ID, r.Title, r.Description, r.Category, r.ControlFamily, r.Source, r.CreatedAt, r.UpdatedAt)
	}
	return rows
}

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	req := sampleRequirement()
	mock.ExpectExec("INSERT INTO security_requirements").
		WithArgs(req.ID, req.Title, req.Description, req.Category, req.ControlFamily, req.Source, req.CreatedAt, req.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), req); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT (.+) FROM security_requirements WHERE id").
		WithArgs("missing").
		WillReturnRows(requirementRows())

	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListPassesFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	req := sampleRequirement()
	mock.ExpectQuery("SELECT (.+) FROM security_requirements").
		WithArgs("mfa", "", "IA").
		WillReturnRows(requirementRows(req))

	items, err := repo.List(context.Background(), Filter{Query: "mfa", ControlFamily: "IA"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0] != req {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestPGRepoUpdateAndDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	req := sampleRequirement()
	mock.ExpectExec("UPDATE security_requirements").
		WithArgs(req.ID, req.Title, req.Description, req.Category, req.ControlFamily, req.Source, req.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM security_requirements WHERE id").
		WithArgs("req-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Update(context.Background(), req); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound from Update, got %v", err)
	}
	if err := repo.Delete(context.Background(), "req-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoReplaceAllUsesTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	req := sampleRequirement()
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM security_requirements").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO security_requirements").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.ReplaceAll(context.Background(), []Requirement{req}); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
