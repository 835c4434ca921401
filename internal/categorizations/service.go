package categorizations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"srtm-backend/internal/shared/telemetry"
	"srtm-backend/internal/shared/validation"
)

// Service contains business logic for system categorizations. The overall
// impact is always recomputed from the information types.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// Create validates in and stores a new categorization.
func (s *Service) Create(ctx context.Context, in Input) (Categorization, error) {
	in = in.normalized()
	if err := validation.Struct(in); err != nil {
		return Categorization{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	now := s.now()
	c := fromInput(uuid.NewString(), in, now, now)
	if err := s.Repo.Create(ctx, c); err != nil {
		return Categorization{}, err
	}
	telemetry.Info("categorization.created", map[string]any{
		"categorization_id": c.ID,
		"overall_impact":    string(c.OverallImpact.Overall),
		"information_types": len(c.InformationTypes),
	})
	return c, nil
}

// Get returns one categorization.
func (s *Service) Get(ctx context.Context, id string) (Categorization, error) {
	if strings.TrimSpace(id) == "" {
		return Categorization{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

// Update replaces the editable fields of an existing categorization.
func (s *Service) Update(ctx context.Context, id string, in Input) (Categorization, error) {
	in = in.normalized()
	if err := validation.Struct(in); err != nil {
		return Categorization{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return Categorization{}, err
	}
	c := fromInput(existing.ID, in, existing.CreatedAt, s.now())
	if err := s.Repo.Update(ctx, c); err != nil {
		return Categorization{}, err
	}
	return c, nil
}

// Delete removes a categorization.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrNotFound
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	telemetry.Info("categorization.deleted", map[string]any{"categorization_id": id})
	return nil
}

// List returns categorizations matching f.
func (s *Service) List(ctx context.Context, f Filter) ([]Categorization, error) {
	return s.Repo.List(ctx, f)
}

// ReplaceAll validates items and makes them the full categorization set.
func (s *Service) ReplaceAll(ctx context.Context, items []Categorization) ([]Categorization, error) {
	now := s.now()
	out := make([]Categorization, 0, len(items))
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		in := Input{
			SystemName:       item.SystemName,
			Description:      item.Description,
			InformationTypes: item.InformationTypes,
		}.normalized()
		if err := validation.Struct(in); err != nil {
			return nil, fmt.Errorf("%w: item %d: %w", ErrInvalidInput, i, err)
		}
		id := strings.TrimSpace(item.ID)
		if id == "" {
			id = uuid.NewString()
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidInput, id)
		}
		seen[id] = true
		created, updated := item.CreatedAt, item.UpdatedAt
		if created.IsZero() {
			created = now
		}
		if updated.IsZero() {
			updated = created
		}
		out = append(out, fromInput(id, in, created.UTC(), updated.UTC()))
	}
	if err := s.Repo.ReplaceAll(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func fromInput(id string, in Input, created, updated time.Time) Categorization {
	return Categorization{
		ID:               id,
		SystemName:       in.SystemName,
		Description:      in.Description,
		InformationTypes: in.InformationTypes,
		OverallImpact:    HighWaterMark(in.InformationTypes),
		CreatedAt:        created,
		UpdatedAt:        updated,
	}
}
