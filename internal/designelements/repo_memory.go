package designelements

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]DesignElement
	order []string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]DesignElement)}
}

func (r *MemoryRepo) Create(ctx context.Context, el DesignElement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[el.ID]; !exists {
		r.order = append(r.order, el.ID)
	}
	r.items[el.ID] = el.clone()
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (DesignElement, error) {
	if err := ctx.Err(); err != nil {
		return DesignElement{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	el, ok := r.items[id]
	if !ok {
		return DesignElement{}, ErrNotFound
	}
	return el.clone(), nil
}

func (r *MemoryRepo) Update(ctx context.Context, el DesignElement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[el.ID]; !ok {
		return ErrNotFound
	}
	r.items[el.ID] = el.clone()
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

func (r *MemoryRepo) List(ctx context.Context, f Filter) ([]DesignElement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]DesignElement, 0, len(r.order))
	for _, id := range r.order {
		if el := r.items[id]; f.Matches(el) {
			out = append(out, el.clone())
		}
	}
	return out, nil
}

func (r *MemoryRepo) ReplaceAll(ctx context.Context, items []DesignElement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	next := make(map[string]DesignElement, len(items))
	order := make([]string, 0, len(items))
	for _, el := range items {
		if _, dup := next[el.ID]; !dup {
			order = append(order, el.ID)
		}
		next[el.ID] = el.clone()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = next
	r.order = order
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
