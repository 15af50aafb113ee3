package metadata

import (
	"cmp"
	"slices"
	"sync"
)

// Repository stores the metadata known at a given point of the contract
// check, at most one value per (target, kind). It only grows forward along the
// step sequence: there is no removal, a later fact overwrites an earlier one.
type Repository struct {
	mu      sync.RWMutex
	entries map[Key]Metadata
}

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{entries: make(map[Key]Metadata)}
}

// Register inserts m or overwrites the value stored under its key.
func (r *Repository) Register(m Metadata) {
	if m == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[KeyOf(m)] = m
}

// Check reports whether requirement m is compatible with what is currently
// registered under its key. It never mutates the repository.
func (r *Repository) Check(m Metadata) bool {
	if m == nil {
		return true
	}
	r.mu.RLock()
	current := r.entries[KeyOf(m)]
	r.mu.RUnlock()
	return m.Satisfied(current)
}

// Lookup returns the value registered for target and kind.
func (r *Repository) Lookup(target string, kind Kind) (Metadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.entries[Key{Target: target, Kind: kind}]
	return m, ok
}

// Len returns the number of registered values.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Snapshot returns the registered values ordered by target then kind.
func (r *Repository) Snapshot() []Metadata {
	r.mu.RLock()
	out := make([]Metadata, 0, len(r.entries))
	for _, m := range r.entries {
		out = append(out, m)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b Metadata) int {
		return cmp.Or(cmp.Compare(a.Target(), b.Target()), cmp.Compare(a.Kind(), b.Kind()))
	})
	return out
}
