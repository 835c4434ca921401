package designelements

import "context"

// Repo defines persistence operations for design elements.
type Repo interface {
	Create(ctx context.Context, el DesignElement) error
	GetByID(ctx context.Context, id string) (DesignElement, error)
	Update(ctx context.Context, el DesignElement) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filter) ([]DesignElement, error)
	ReplaceAll(ctx context.Context, items []DesignElement) error
}
