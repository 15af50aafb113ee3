// Package errorlog records the failures of a pipeline run: plan errors found by
// the static contract check, and execution errors reported while steps run.
package errorlog

import "fmt"

// Kind distinguishes the two error regimes.
type Kind string

const (
	KindPlan      Kind = "plan"
	KindExecution Kind = "execution"
)

// ErrorLog is one entry of the error repository.
type ErrorLog interface {
	Kind() Kind
	// Identity is the key used to collapse duplicate entries.
	Identity() string
	Error() string
}

// PlanError is a static contract violation. It is only produced before
// execution starts and its presence refuses execution.
type PlanError struct {
	Step        string
	Position    int
	Preparator  string
	Requirement string
	Message     string
}

func (e PlanError) Kind() Kind { return KindPlan }

func (e PlanError) Identity() string {
	return fmt.Sprintf("plan|%d|%s|%s", e.Position, e.Requirement, e.Message)
}

func (e PlanError) Error() string {
	return fmt.Sprintf("step %d (%s, %s): %s: %s", e.Position, e.Step, e.Preparator, e.Message, e.Requirement)
}

// ExecutionError is a failure raised while a step ran. Record is -1 when the
// failure concerns the whole step rather than one record.
type ExecutionError struct {
	Step       string
	Position   int
	Preparator string
	Target     string
	Record     int64
	Message    string
}

func (e ExecutionError) Kind() Kind { return KindExecution }

func (e ExecutionError) Identity() string {
	return fmt.Sprintf("execution|%d|%s|%d|%s", e.Position, e.Target, e.Record, e.Message)
}

func (e ExecutionError) Error() string {
	if e.Record < 0 {
		return fmt.Sprintf("step %d (%s, %s) on %q: %s", e.Position, e.Step, e.Preparator, e.Target, e.Message)
	}
	return fmt.Sprintf("step %d (%s, %s) on %q record %d: %s", e.Position, e.Step, e.Preparator, e.Target, e.Record, e.Message)
}
