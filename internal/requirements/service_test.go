package requirements

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"srtm-backend/internal/shared/validation"
)

func newTestService() *Service {
	clock := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)
	svc := NewService(NewMemoryRepo())
	svc.Now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc
}

func TestServiceCreateNormalizes(t *testing.T) {
	svc := newTestService()
	req, err := svc.Create(context.Background(), Input{
		Title:         "  Enforce MFA ",
		Description:   "All admins use MFA",
		Category:      "Identification",
		ControlFamily: " ia ",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, "Enforce MFA", req.Title)
	assert.Equal(t, "IA", req.ControlFamily)
	assert.Equal(t, req.CreatedAt, req.UpdatedAt)
}

func TestServiceCreateRejectsInvalid(t *testing.T) {
	svc := newTestService()
	_, err := svc.Create(context.Background(), Input{Title: " ", ControlFamily: "IA-2"})
	require.ErrorIs(t, err, ErrInvalidInput)

	fields := validation.Details(err)
	require.Len(t, fields, 2)
	assert.Equal(t, "title", fields[0].Field)
	assert.Equal(t, "controlFamily", fields[1].Field)
}

func TestServiceUpdateKeepsCreatedAt(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	created, err := svc.Create(ctx, Input{Title: "Audit logging"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, Input{Title: "Audit logging", ControlFamily: "AU"})
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, "AU", updated.ControlFamily)

	_, err = svc.Update(ctx, "missing", Input{Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceDeleteAndList(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	a, err := svc.Create(ctx, Input{Title: "Session timeout", Category: "Access", ControlFamily: "AC"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, Input{Title: "Encrypt data at rest", Description: "Use AES-256", Category: "Crypto", ControlFamily: "SC"})
	require.NoError(t, err)

	items, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, a.ID, items[0].ID)

	items, err = svc.List(ctx, Filter{Query: "aes"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "SC", items[0].ControlFamily)

	items, err = svc.List(ctx, Filter{ControlFamily: "ac", Category: "access"})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.ErrorIs(t, svc.Delete(ctx, a.ID), ErrNotFound)
	_, err = svc.Get(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceReplaceAll(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, err := svc.Create(ctx, Input{Title: "old"})
	require.NoError(t, err)

	stamp := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	out, err := svc.ReplaceAll(ctx, []Requirement{
		{ID: "req-1", Title: "Imported", ControlFamily: "cm", CreatedAt: stamp},
		{Title: "Generated id"},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "CM", out[0].ControlFamily)
	assert.Equal(t, stamp, out[0].CreatedAt)
	assert.Equal(t, stamp, out[0].UpdatedAt)
	assert.NotEmpty(t, out[1].ID)

	items, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "req-1", items[0].ID)
}

func TestServiceReplaceAllRejectsBadItems(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, err := svc.Create(ctx, Input{Title: "keep me"})
	require.NoError(t, err)

	_, err = svc.ReplaceAll(ctx, []Requirement{{ID: "a", Title: "x"}, {ID: "a", Title: "y"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.ReplaceAll(ctx, []Requirement{{ID: "a"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	items, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestEngineRequirements(t *testing.T) {
	out := EngineRequirements([]Requirement{{ID: "r1", Title: "t", ControlFamily: "AC", Source: "NIST"}})
	require.Len(t, out, 1)
	assert.Equal(t, "r1", out[0].ID)
	assert.Equal(t, "AC", out[0].ControlFamily)
	assert.Equal(t, "NIST", out[0].Source)
}
