package categorizations

import "context"

// Repo defines persistence operations for categorizations.
type Repo interface {
	Create(ctx context.Context, c Categorization) error
	GetByID(ctx context.Context, id string) (Categorization, error)
	Update(ctx context.Context, c Categorization) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filter) ([]Categorization, error)
	ReplaceAll(ctx context.Context, items []Categorization) error
}
