package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alexisbeaulieu97/dataprep/internal/errorlog"
)

// CheckResult is the outcome of the static contract check.
type CheckResult struct {
	State      State
	Code       TerminationCode
	Steps      int
	PlanErrors []errorlog.PlanError
}

// OK reports whether the pipeline may be executed.
func (r CheckResult) OK() bool {
	return len(r.PlanErrors) == 0
}

// String renders a human readable summary of the check.
func (r CheckResult) String() string {
	if r.OK() {
		return fmt.Sprintf("%d step(s) checked, no contract violations", r.Steps)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d step(s) checked, %d contract violation(s):\n", r.Steps, len(r.PlanErrors))
	for _, pe := range r.PlanErrors {
		fmt.Fprintf(&b, "  - %s\n", pe.Error())
	}
	return b.String()
}

// CheckPipelineErrors runs the static check over every step in order. It does
// not stop at the first violation: all unmet prerequisites are recorded. With
// at least one plan error the pipeline is Aborted, otherwise Checked.
func (p *Pipeline) CheckPipelineErrors() (CheckResult, error) {
	p.mu.Lock()
	if p.state != StateBuilding {
		state := p.state
		p.mu.Unlock()
		return CheckResult{State: state, Code: TerminationFailure}, invalidState("check pipeline", state)
	}
	steps := slices.Clone(p.preparations)
	p.mu.Unlock()

	for _, prep := range steps {
		if prep.checkAgainst(p.metadata, p.errors) {
			p.log.WithFields(map[string]any{"step": prep.id, "position": prep.position}).Debug("contract satisfied")
			continue
		}
		p.log.WithFields(map[string]any{"step": prep.id, "position": prep.position}).Warn("contract violated")
	}

	result := CheckResult{
		State:      StateChecked,
		Code:       TerminationOK,
		Steps:      len(steps),
		PlanErrors: p.errors.PlanErrors(),
	}
	if !result.OK() {
		result.State = StateAborted
		result.Code = TerminationPipelineHasError
		p.log.With("plan_errors", len(result.PlanErrors)).Warn("pipeline has errors, execution refused")
	} else {
		p.log.With("steps", len(steps)).Info("pipeline checked")
	}

	p.setState(result.State)
	p.emit(Event{Kind: EventCheckFinished, Total: len(steps), Errors: len(result.PlanErrors)})
	return result, nil
}
