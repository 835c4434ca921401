package categorizations

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Categorization
	order []string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]Categorization)}
}

func (r *MemoryRepo) Create(ctx context.Context, cat Categorization) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[cat.ID]; !exists {
		r.order = append(r.order, cat.ID)
	}
	r.items[cat.ID] = cat.clone()
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Categorization, error) {
	if err := ctx.Err(); err != nil {
		return Categorization{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cat, ok := r.items[id]
	if !ok {
		return Categorization{}, ErrNotFound
	}
	return cat.clone(), nil
}

func (r *MemoryRepo) Update(ctx context.Context, cat Categorization) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[cat.ID]; !ok {
		return ErrNotFound
	}
	r.items[cat.ID] = cat.clone()
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, f Filter) ([]Categorization, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Categorization, 0, len(r.order))
	for _, id := range r.order {
		if cat := r.items[id]; f.Matches(cat) {
			out = append(out, cat.clone())
		}
	}
	return out, nil
}

func (r *MemoryRepo) ReplaceAll(ctx context.Context, items []Categorization) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	next := make(map[string]Categorization, len(items))
	order := make([]string, 0, len(items))
	for _, cat := range items {
		if _, dup := next[cat.ID]; !dup {
			order = append(order, cat.ID)
		}
		next[cat.ID] = cat.clone()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = next
	r.order = order
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
