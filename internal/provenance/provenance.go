// Package provenance keeps one lineage record per executed pipeline step.
package provenance

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"
)

// Record describes one executed step.
type Record struct {
	RunID      string
	Position   int
	Step       string
	Preparator string
	Parameters map[string]string
	InputRows  int
	OutputRows int
	ErrorCount int
	StartedAt  time.Time
	Duration   time.Duration
	Revision   string
}

// Sink receives records as steps complete. The pipeline logs and ignores sink
// failures.
type Sink interface {
	Append(ctx context.Context, record Record) error
}

// Repository is the in-memory, append-only record list of one pipeline.
type Repository struct {
	mu      sync.RWMutex
	records []Record
}

func NewRepository() *Repository {
	return &Repository{}
}

// Append implements Sink and never fails.
func (r *Repository) Append(_ context.Context, record Record) error {
	record.Parameters = maps.Clone(record.Parameters)
	r.mu.Lock()
	r.records = append(r.records, record)
	r.mu.Unlock()
	return nil
}

// Records returns the records in append order.
func (r *Repository) Records() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.records)
}

func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
