package engine

import (
	"errors"
	"fmt"

	"github.com/alexisbeaulieu97/dataprep/internal/errorlog"
)

// State is the lifecycle stage of a pipeline.
type State int

const (
	StateBuilding State = iota
	StateChecked
	StateAborted
	StateExecuting
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateBuilding:
		return "building"
	case StateChecked:
		return "checked"
	case StateAborted:
		return "aborted"
	case StateExecuting:
		return "executing"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// TerminationCode is the documented process outcome of a pipeline run. The
// engine only returns it; exiting is up to the caller.
type TerminationCode int

const (
	TerminationOK               TerminationCode = 0
	TerminationFailure          TerminationCode = 1
	TerminationPipelineHasError TerminationCode = 3
)

var (
	// ErrInvalidState is returned when an operation is not allowed in the
	// current pipeline state.
	ErrInvalidState = errors.New("operation not allowed in current pipeline state")
	// ErrAlreadyBound is returned when a preparation is added twice.
	ErrAlreadyBound = errors.New("preparation already belongs to a pipeline")
)

// PipelineError reports that execution was refused because the static check
// found contract violations.
type PipelineError struct {
	Code       TerminationCode
	PlanErrors []errorlog.PlanError
}

func (e *PipelineError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("pipeline has errors: %d unmet contract(s), execution refused", len(e.PlanErrors))
}

func invalidState(op string, s State) error {
	return fmt.Errorf("%s: pipeline is %s: %w", op, s, ErrInvalidState)
}
