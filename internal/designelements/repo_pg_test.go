package designelements

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateEncodesRequirementIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)
	el := DesignElement{ID: "de-1", Name: "DB", Type: "Database", Technology: "PostgreSQL", CreatedAt: now, UpdatedAt: now}

	mock.ExpectExec("INSERT INTO design_elements").
		WithArgs(el.ID, el.Name, el.Description, el.Type, el.Technology, `[]`, now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), el); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListDecodesRequirementIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "name", "description", "element_type", "technology", "requirement_ids", "created_at", "updated_at"}).
		AddRow("de-1", "DB", "", "Database", "PostgreSQL", []byte(`["req-1","req-2"]`), now, now).
		AddRow("de-2", "Proxy", "", "Network", "", []byte(`[]`), now, now)
	mock.ExpectQuery("SELECT (.+) FROM design_elements").
		WithArgs("", "", "req-1").
		WillReturnRows(rows)

	items, err := repo.List(context.Background(), Filter{RequirementID: "req-1"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if !reflect.DeepEqual(items[0].RequirementIDs, []string{"req-1", "req-2"}) {
		t.Fatalf("unexpected requirement ids: %v", items[0].RequirementIDs)
	}
	if items[1].RequirementIDs == nil || len(items[1].RequirementIDs) != 0 {
		t.Fatalf("expected empty non-nil ids, got %#v", items[1].RequirementIDs)
	}
}

func TestPGRepoDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("DELETE FROM design_elements WHERE id").
		WithArgs("nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &PGRepo{DB: db}
	if err := repo.Delete(context.Background(), "nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
