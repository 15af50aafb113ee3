package engine

import (
	"context"
	"slices"
	"time"

	"github.com/alexisbeaulieu97/dataprep/internal/dataset"
	"github.com/alexisbeaulieu97/dataprep/internal/errorlog"
	"github.com/alexisbeaulieu97/dataprep/internal/preparator"
	"github.com/alexisbeaulieu97/dataprep/internal/provenance"
	dataperrors "github.com/alexisbeaulieu97/dataprep/pkg/errors"
)

// Result summarises an executed pipeline.
type Result struct {
	State           State
	Code            TerminationCode
	Dataset         *dataset.Dataset
	Steps           int
	ExecutionErrors int
	Duration        time.Duration
}

// ExecutePipeline runs every step in order against the dataset. It is only
// allowed once the check passed; an aborted pipeline gets a *PipelineError and
// its dataset is left untouched.
//
// Execution errors never stop the run: each step's errors are merged into the
// error repository and the next step runs on the output of the previous one.
// Once started, execution is not cancelled by ctx.
func (p *Pipeline) ExecutePipeline(ctx context.Context) (Result, error) {
	p.mu.Lock()
	switch p.state {
	case StateChecked:
	case StateAborted:
		ds := p.dataset
		p.mu.Unlock()
		return Result{State: StateAborted, Code: TerminationPipelineHasError, Dataset: ds},
			&PipelineError{Code: TerminationPipelineHasError, PlanErrors: p.errors.PlanErrors()}
	default:
		state, ds := p.state, p.dataset
		p.mu.Unlock()
		return Result{State: state, Code: TerminationFailure, Dataset: ds}, invalidState("execute pipeline", state)
	}
	if p.dataset == nil {
		p.mu.Unlock()
		return Result{State: StateChecked, Code: TerminationFailure}, invalidState("execute pipeline without dataset", StateChecked)
	}
	p.state = StateExecuting
	steps := slices.Clone(p.preparations)
	p.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	start := time.Now()
	p.log.With("steps", len(steps)).Info("executing pipeline")

	for _, prep := range steps {
		p.executeStep(ctx, prep, len(steps))
	}

	p.setState(StateCompleted)
	result := Result{
		State:           StateCompleted,
		Code:            TerminationOK,
		Dataset:         p.Dataset(),
		Steps:           len(steps),
		ExecutionErrors: p.errors.CountExecutionErrors(),
		Duration:        time.Since(start),
	}
	p.log.WithFields(map[string]any{
		"execution_errors": result.ExecutionErrors,
		"duration_ms":      result.Duration.Milliseconds(),
	}).Info("pipeline completed")
	p.emit(Event{Kind: EventPipelineFinished, Total: len(steps), Errors: result.ExecutionErrors, Rows: result.Dataset.Count(), Duration: result.Duration})
	return result, nil
}

// Run checks the pipeline and, when the check passes, executes it.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	check, err := p.CheckPipelineErrors()
	if err != nil {
		return Result{State: check.State, Code: TerminationFailure, Dataset: p.Dataset()}, err
	}
	return p.ExecutePipeline(ctx)
}

func (p *Pipeline) executeStep(ctx context.Context, prep *Preparation, total int) {
	log := p.log.WithFields(map[string]any{"step": prep.id, "position": prep.position, "preparator": prep.preparator.Name()})
	p.emit(Event{Kind: EventStepStarted, Step: prep.id, Preparator: prep.preparator.Name(), Position: prep.position, Total: total})
	log.Debug("step started")

	started := time.Now()
	input := p.Dataset()
	acc := errorlog.NewAccumulator()

	out, err := prep.preparator.ExecuteLogic(ctx, preparator.Input{
		Dataset:     input,
		Errors:      acc,
		Parallelism: p.parallelism,
	})
	switch {
	case err != nil:
		log.Error(dataperrors.NewExecutionError(prep.id, err), "step failed, dataset left unchanged")
		acc.ReportStep("", err.Error())
		out = preparator.ExecutionContext{Dataset: input, Errors: acc}
	case out.Dataset == nil:
		acc.ReportStep("", "preparator returned no dataset")
		out.Dataset = input
	}
	if out.Errors != nil && out.Errors != acc {
		acc.Merge(out.Errors)
	}

	entries := acc.Entries()
	logs := make([]errorlog.ErrorLog, 0, len(entries))
	for _, e := range entries {
		logs = append(logs, errorlog.ExecutionError{
			Step:       prep.id,
			Position:   prep.position,
			Preparator: prep.preparator.Name(),
			Target:     e.Target,
			Record:     e.Record,
			Message:    e.Message,
		})
	}
	p.errors.Add(logs...)

	p.mu.Lock()
	p.dataset = out.Dataset
	p.mu.Unlock()

	duration := time.Since(started)
	record := provenance.Record{
		RunID:      p.runID,
		Position:   prep.position,
		Step:       prep.id,
		Preparator: prep.preparator.Name(),
		Parameters: prep.preparator.Parameters(),
		InputRows:  input.Count(),
		OutputRows: out.Dataset.Count(),
		ErrorCount: len(entries),
		StartedAt:  started,
		Duration:   duration,
		Revision:   p.revision,
	}
	_ = p.provenance.Append(ctx, record)
	for _, sink := range p.sinks {
		if err := sink.Append(ctx, record); err != nil {
			log.Error(err, "provenance sink failed")
		}
	}

	log.WithFields(map[string]any{"errors": len(entries), "rows": out.Dataset.Count(), "duration_ms": duration.Milliseconds()}).Info("step finished")
	p.emit(Event{
		Kind:       EventStepFinished,
		Step:       prep.id,
		Preparator: prep.preparator.Name(),
		Position:   prep.position,
		Total:      total,
		Errors:     len(entries),
		Rows:       out.Dataset.Count(),
		Duration:   duration,
	})
}
