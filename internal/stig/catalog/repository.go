package catalog

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const defaultHistoryLimit = 10

// SnapshotInfo describes one catalog snapshot without its families.
type SnapshotInfo struct {
	Revision    int       `json:"revision"`
	Version     string    `json:"version"`
	Source      string    `json:"source"`
	Label       string    `json:"label,omitempty"`
	FamilyCount int       `json:"familyCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type snapshot struct {
	info     SnapshotInfo
	families []Family
}

// Repository owns the active catalog snapshot and a bounded backup history.
// Snapshots are never mutated in place: every change swaps in a new one, and
// readers always receive copies.
type Repository struct {
	mu       sync.RWMutex
	current  snapshot
	history  []snapshot // oldest first
	limit    int
	revision int
	now      func() time.Time
}

// NewRepository validates families and makes them the first snapshot.
func NewRepository(families []Family, version string, historyLimit int) (*Repository, error) {
	return newRepository(families, version, historyLimit, time.Now)
}

func newRepository(families []Family, version string, historyLimit int, now func() time.Time) (*Repository, error) {
	valid, err := Validate(families)
	if err != nil {
		return nil, err
	}
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	r := &Repository{limit: historyLimit, now: now}
	r.current = r.newSnapshotLocked(valid, version, "initial")
	return r, nil
}

// NewBuiltinRepository returns a repository seeded with the compiled-in catalog.
func NewBuiltinRepository(historyLimit int) *Repository {
	r, err := NewRepository(Builtin(), BuiltinVersion, historyLimit)
	if err != nil {
		panic(fmt.Sprintf("builtin catalog is invalid: %v", err))
	}
	return r
}

// Families returns a copy of the active catalog in catalog order.
func (r *Repository) Families() []Family {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAll(r.current.families)
}

// Get returns one family of the active catalog.
func (r *Repository) Get(id string) (Family, error) {
	id = strings.TrimSpace(id)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.current.families {
		if f.ID == id {
			return f.Clone(), nil
		}
	}
	return Family{}, fmt.Errorf("%w: %s", ErrFamilyNotFound, id)
}

// Current describes the active snapshot.
func (r *Repository) Current() SnapshotInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current.info
}

// History lists backed-up snapshots, newest first.
func (r *Repository) History() []SnapshotInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]SnapshotInfo, 0, len(r.history))
	for i := len(r.history) - 1; i >= 0; i-- {
		out = append(out, r.history[i].info)
	}
	return out
}

// Replace validates families and makes them active, backing up the prior snapshot.
func (r *Repository) Replace(families []Family, version, source string) (SnapshotInfo, error) {
	valid, err := Validate(families)
	if err != nil {
		return SnapshotInfo{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backupLocked("pre-replace")
	r.current = r.newSnapshotLocked(valid, version, source)
	return r.current.info, nil
}

// Backup records a copy of the active snapshot in the history.
func (r *Repository) Backup(label string) SnapshotInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backupLocked(label)
}

// Restore re-activates a backed-up revision. The restored catalog becomes a
// new revision so the history stays append-only.
func (r *Repository) Restore(revision int) (SnapshotInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := -1
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].info.Revision == revision {
			idx = i
			break
		}
	}
	if idx < 0 {
		return SnapshotInfo{}, fmt.Errorf("%w: %d", ErrRevisionNotFound, revision)
	}
	target := r.history[idx]
	r.backupLocked("pre-restore")
	r.current = r.newSnapshotLocked(cloneAll(target.families), target.info.Version, fmt.Sprintf("restore:%d", revision))
	return r.current.info, nil
}

func (r *Repository) backupLocked(label string) SnapshotInfo {
	info := r.current.info
	info.Label = strings.TrimSpace(label)
	info.CreatedAt = r.now().UTC()
	r.history = append(r.history, snapshot{info: info, families: cloneAll(r.current.families)})
	if over := len(r.history) - r.limit; over > 0 {
		r.history = append([]snapshot(nil), r.history[over:]...)
	}
	return info
}

func (r *Repository) newSnapshotLocked(families []Family, version, source string) snapshot {
	r.revision++
	version = strings.TrimSpace(version)
	if version == "" {
		version = fmt.Sprintf("rev-%d", r.revision)
	}
	return snapshot{
		info: SnapshotInfo{
			Revision:    r.revision,
			Version:     version,
			Source:      source,
			FamilyCount: len(families),
			CreatedAt:   r.now().UTC(),
		},
		families: families,
	}
}
