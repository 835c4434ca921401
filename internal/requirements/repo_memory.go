package requirements

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo. List returns items in
// insertion order.
type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Requirement
	order []string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]Requirement)}
}

func (r *MemoryRepo) Create(ctx context.Context, req Requirement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[req.ID]; !exists {
		r.order = append(r.order, req.ID)
	}
	r.items[req.ID] = req
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Requirement, error) {
	if err := ctx.Err(); err != nil {
		return Requirement{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.items[id]
	if !ok {
		return Requirement{}, ErrNotFound
	}
	return req, nil
}

func (r *MemoryRepo) Update(ctx context.Context, req Requirement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[req.ID]; !ok {
		return ErrNotFound
	}
	r.items[req.ID] = req
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

func (r *MemoryRepo) List(ctx context.Context, f Filter) ([]Requirement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Requirement, 0, len(r.order))
	for _, id := range r.order {
		if req := r.items[id]; f.Matches(req) {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *MemoryRepo) ReplaceAll(ctx context.Context, items []Requirement) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	next := make(map[string]Requirement, len(items))
	order := make([]string, 0, len(items))
	for _, req := range items {
		if _, dup := next[req.ID]; !dup {
			order = append(order, req.ID)
		}
		next[req.ID] = req
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = next
	r.order = order
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
