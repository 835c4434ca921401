package requirements

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"srtm-backend/internal/shared/telemetry"
	"srtm-backend/internal/shared/validation"
)

// Service contains business logic for requirements.
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

// Create validates in and stores a new requirement.
func (s *Service) Create(ctx context.Context, in Input) (Requirement, error) {
	in = in.normalized()
	if err := validation.Struct(in); err != nil {
		return Requirement{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	now := s.now()
	req := fromInput(uuid.NewString(), in, now, now)
	if err := s.Repo.Create(ctx, req); err != nil {
		return Requirement{}, err
	}
	telemetry.Info("requirement.created", map[string]any{
		"requirement_id": req.ID,
		"control_family": req.ControlFamily,
	})
	return req, nil
}

// Get returns one requirement.
func (s *Service) Get(ctx context.Context, id string) (Requirement, error) {
	if strings.TrimSpace(id) == "" {
		return Requirement{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

// Update replaces the editable fields of an existing requirement.
func (s *Service) Update(ctx context.Context, id string, in Input) (Requirement, error) {
	in = in.normalized()
	if err := validation.Struct(in); err != nil {
		return Requirement{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return Requirement{}, err
	}
	req := fromInput(existing.ID, in, existing.CreatedAt, s.now())
	if err := s.Repo.Update(ctx, req); err != nil {
		return Requirement{}, err
	}
	return req, nil
}

// Delete removes a requirement.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrNotFound
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	telemetry.Info("requirement.deleted", map[string]any{"requirement_id": id})
	return nil
}

// List returns requirements matching f.
func (s *Service) List(ctx context.Context, f Filter) ([]Requirement, error) {
	return s.Repo.List(ctx, f)
}

// ReplaceAll validates items and makes them the full requirement set.
// Missing ids are generated and missing timestamps are stamped now.
func (s *Service) ReplaceAll(ctx context.Context, items []Requirement) ([]Requirement, error) {
	now := s.now()
	out := make([]Requirement, 0, len(items))
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		in := Input{
			Title:         item.Title,
			Description:   item.Description,
			Category:      item.Category,
			ControlFamily: item.ControlFamily,
			Source:        item.Source,
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

func fromInput(id string, in Input, created, updated time.Time) Requirement {
	return Requirement{
		ID:            id,
		Title:         in.Title,
		Description:   in.Description,
		Category:      in.Category,
		ControlFamily: in.ControlFamily,
		Source:        in.Source,
		CreatedAt:     created,
		UpdatedAt:     updated,
	}
}
