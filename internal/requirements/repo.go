package requirements

import "context"

// Repo defines persistence operations for requirements.
type Repo interface {
	Create(ctx context.Context, r Requirement) error
	GetByID(ctx context.Context, id string) (Requirement, error)
	Update(ctx context.Context, r Requirement) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filter) ([]Requirement, error)
	ReplaceAll(ctx context.Context, items []Requirement) error
}
