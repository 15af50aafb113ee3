package errorlog

import (
	"cmp"
	"slices"
	"sync"
)

// StepRecord marks a RecordError that concerns the whole step.
const StepRecord int64 = -1

// RecordError is a failure reported by a preparator while it runs.
type RecordError struct {
	Target  string
	Record  int64
	Message string
}

func compareRecordErrors(a, b RecordError) int {
	return cmp.Or(
		cmp.Compare(a.Record, b.Record),
		cmp.Compare(a.Target, b.Target),
		cmp.Compare(a.Message, b.Message),
	)
}

// Accumulator collects the errors of one step. Reports may come from many
// goroutines in any order; the content seen through Entries does not depend on
// that order, nor on the order Buffers and other accumulators are merged in.
type Accumulator struct {
	mu      sync.Mutex
	entries []RecordError
}

func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Report adds one error.
func (a *Accumulator) Report(target string, record int64, message string) {
	a.mu.Lock()
	a.entries = append(a.entries, RecordError{Target: target, Record: record, Message: message})
	a.mu.Unlock()
}

// ReportStep adds one error that concerns the whole step.
func (a *Accumulator) ReportStep(target, message string) {
	a.Report(target, StepRecord, message)
}

// Merge folds other into a. other is left untouched.
func (a *Accumulator) Merge(other *Accumulator) {
	if other == nil || other == a {
		return
	}
	other.mu.Lock()
	incoming := slices.Clone(other.entries)
	other.mu.Unlock()

	a.mu.Lock()
	a.entries = append(a.entries, incoming...)
	a.mu.Unlock()
}

func (a *Accumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

// Entries returns the collected errors in canonical order.
func (a *Accumulator) Entries() []RecordError {
	a.mu.Lock()
	out := slices.Clone(a.entries)
	a.mu.Unlock()
	slices.SortFunc(out, compareRecordErrors)
	return out
}

// Buffer returns a worker-local collector that is flushed into a with Flush.
// A Buffer must not be shared between goroutines.
func (a *Accumulator) Buffer() *Buffer {
	return &Buffer{parent: a}
}

// Buffer is an unsynchronized per-worker error collector.
type Buffer struct {
	parent  *Accumulator
	entries []RecordError
}

func (b *Buffer) Report(target string, record int64, message string) {
	b.entries = append(b.entries, RecordError{Target: target, Record: record, Message: message})
}

// Flush hands the buffered errors to the parent accumulator and empties b.
func (b *Buffer) Flush() {
	if len(b.entries) == 0 {
		return
	}
	b.parent.mu.Lock()
	b.parent.entries = append(b.parent.entries, b.entries...)
	b.parent.mu.Unlock()
	b.entries = nil
}
