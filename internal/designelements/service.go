package designelements

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"srtm-backend/internal/shared/telemetry"
	"srtm-backend/internal/shared/validation"
)

// Service contains business logic for design elements.
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

// Create validates in and stores a new design element.
func (s *Service) Create(ctx context.Context, in Input) (DesignElement, error) {
	in = in.normalized()
	if err := validation.Struct(in); err != nil {
		return DesignElement{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	now := s.now()
	el := fromInput(uuid.NewString(), in, now, now)
	if err := s.Repo.Create(ctx, el); err != nil {
		return DesignElement{}, err
	}
	telemetry.Info("design_element.created", map[string]any{
		"design_element_id": el.ID,
		"type":              el.Type,
		"linked":            len(el.RequirementIDs),
	})
	return el, nil
}

// Get returns one design element.
func (s *Service) Get(ctx context.Context, id string) (DesignElement, error) {
	if strings.TrimSpace(id) == "" {
		return DesignElement{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

// Update replaces the editable fields of an existing design element.
func (s *Service) Update(ctx context.Context, id string, in Input) (DesignElement, error) {
	in = in.normalized()
	if err := validation.Struct(in); err != nil {
		return DesignElement{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return DesignElement{}, err
	}
	el := fromInput(existing.ID, in, existing.CreatedAt, s.now())
	if err := s.Repo.Update(ctx, el); err != nil {
		return DesignElement{}, err
	}
	return el, nil
}

// Delete removes a design element.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrNotFound
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	telemetry.Info("design_element.deleted", map[string]any{"design_element_id": id})
	return nil
}

// List returns design elements matching f.
func (s *Service) List(ctx context.Context, f Filter) ([]DesignElement, error) {
	return s.Repo.List(ctx, f)
}

// ReplaceAll validates items and makes them the full design element set.
func (s *Service) ReplaceAll(ctx context.Context, items []DesignElement) ([]DesignElement, error) {
	now := s.now()
	out := make([]DesignElement, 0, len(items))
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		in := Input{
			Name:           item.Name,
			Description:    item.Description,
			Type:           item.Type,
			Technology:     item.Technology,
			RequirementIDs: item.RequirementIDs,
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

func fromInput(id string, in Input, created, updated time.Time) DesignElement {
	return DesignElement{
		ID:             id,
		Name:           in.Name,
		Description:    in.Description,
		Type:           in.Type,
		Technology:     in.Technology,
		RequirementIDs: in.RequirementIDs,
		CreatedAt:      created,
		UpdatedAt:      updated,
	}
}
