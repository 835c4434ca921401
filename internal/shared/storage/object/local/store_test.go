package local

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"srtm-backend/internal/shared/storage/object"
)

func TestPutThenOpen(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	n, err := store.Put(ctx, "workflows/export.json", "application/json", strings.NewReader(`{"version":"1.1.0"}`))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if n != 19 {
		t.Fatalf("expected 19 bytes written, got %d", n)
	}

	rc, err := store.Open(ctx, "workflows/export.json")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != `{"version":"1.1.0"}` {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestOpenMissingReturnsNotFound(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.Open(context.Background(), "stig-library/missing.xml")
	if !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Put(context.Background(), "../escape.txt", "text/plain", strings.NewReader("x")); err == nil {
		t.Fatalf("expected traversal key to be rejected")
	}
	if _, err := store.Open(context.Background(), "/etc/passwd"); err == nil {
		t.Fatalf("expected absolute key to be rejected")
	}
}
