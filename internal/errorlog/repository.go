package errorlog

import "sync"

// Repository is the ordered error log of one pipeline run. Entries keep their
// first insertion order; an entry whose identity is already present is dropped.
type Repository struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]ErrorLog
}

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{entries: make(map[string]ErrorLog)}
}

// Add appends entries, skipping duplicates. It reports how many were new.
func (r *Repository) Add(logs ...ErrorLog) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	added := 0
	for _, l := range logs {
		if l == nil {
			continue
		}
		id := l.Identity()
		if _, exists := r.entries[id]; exists {
			continue
		}
		r.entries[id] = l
		r.order = append(r.order, id)
		added++
	}
	return added
}

// Logs returns every entry in insertion order.
func (r *Repository) Logs() []ErrorLog {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ErrorLog, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}

func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

func (r *Repository) count(kind Kind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, id := range r.order {
		if r.entries[id].Kind() == kind {
			n++
		}
	}
	return n
}

// CountPlanErrors returns the number of plan errors.
func (r *Repository) CountPlanErrors() int { return r.count(KindPlan) }

// CountExecutionErrors returns the number of execution errors.
func (r *Repository) CountExecutionErrors() int { return r.count(KindExecution) }

// HasPlanErrors reports whether execution must be refused.
func (r *Repository) HasPlanErrors() bool { return r.CountPlanErrors() > 0 }

// PlanErrors returns the plan errors in insertion order.
func (r *Repository) PlanErrors() []PlanError {
	var out []PlanError
	for _, l := range r.Logs() {
		if pe, ok := l.(PlanError); ok {
			out = append(out, pe)
		}
	}
	return out
}

// ExecutionErrors returns the execution errors in insertion order.
func (r *Repository) ExecutionErrors() []ExecutionError {
	var out []ExecutionError
	for _, l := range r.Logs() {
		if ee, ok := l.(ExecutionError); ok {
			out = append(out, ee)
		}
	}
	return out
}

// Equal reports whether both repositories hold the same entries in the same
// order.
func (r *Repository) Equal(other *Repository) bool {
	if r == nil || other == nil {
		return r == other
	}
	a, b := r.Logs(), other.Logs()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Identity() != b[i].Identity() {
			return false
		}
	}
	return true
}
