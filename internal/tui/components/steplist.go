package components

import "time"

// Step statuses shown in the list.
const (
	StatusPending = "pending"
	StatusRunning = "running"
	StatusDone    = "done"
	// StatusErrors marks a step that finished but reported execution errors.
	StatusErrors = "errors"
)

// StepEntry represents a single step for rendering.
type StepEntry struct {
	ID         string
	Preparator string
	Status     string
	Errors     int
	Rows       int
	Duration   time.Duration
}

// Finished reports whether the step ran to the end.
func (e StepEntry) Finished() bool {
	return e.Status == StatusDone || e.Status == StatusErrors
}

// StepList holds the steps of a pipeline in execution order.
type StepList struct {
	entries []StepEntry
}

// NewStepList constructs a step list component.
func NewStepList(order []string, steps map[string]StepEntry) StepList {
	entries := make([]StepEntry, 0, len(order))
	for _, id := range order {
		entry := steps[id]
		entry.ID = id
		entries = append(entries, entry)
	}
	return StepList{entries: entries}
}

// Entries returns the ordered step entries.
func (s StepList) Entries() []StepEntry {
	clone := make([]StepEntry, len(s.entries))
	copy(clone, s.entries)
	return clone
}

// Completed counts finished entries.
func (s StepList) Completed() int {
	n := 0
	for _, e := range s.entries {
		if e.Finished() {
			n++
		}
	}
	return n
}
