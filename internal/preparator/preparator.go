package preparator

import (
	"context"

	"github.com/alexisbeaulieu97/dataprep/internal/dataset"
	"github.com/alexisbeaulieu97/dataprep/internal/errorlog"
	"github.com/alexisbeaulieu97/dataprep/internal/metadata"
)

// MetadataSetup is the contract of a preparator: what must be known before it
// runs and what is known after.
type MetadataSetup struct {
	Prerequisites  []metadata.Metadata
	Postconditions []metadata.Metadata
}

// Input is what the pipeline hands to a preparator for one invocation.
type Input struct {
	Dataset     *dataset.Dataset
	Errors      *errorlog.Accumulator
	Parallelism int
}

// Reporter returns a per-partition error buffer factory for dataset transforms.
func (in Input) Reporter() func() dataset.Reporter {
	return func() dataset.Reporter { return in.Errors.Buffer() }
}

// ExecutionContext is the result of one invocation: the dataset the next step
// reads and the errors collected on the way.
type ExecutionContext struct {
	Dataset *dataset.Dataset
	Errors  *errorlog.Accumulator
}

// Result builds the execution context of in with ds as the output.
func (in Input) Result(ds *dataset.Dataset) ExecutionContext {
	return ExecutionContext{Dataset: ds, Errors: in.Errors}
}

// Unchanged reports a step-wide failure on target and returns the input dataset
// as the result.
func (in Input) Unchanged(target, message string) ExecutionContext {
	in.Errors.ReportStep(target, message)
	return in.Result(in.Dataset)
}

// Preparator is one transformation unit of a pipeline.
//
// BuildMetadataSetup must not depend on data: it is called before any dataset
// exists. ExecuteLogic must tolerate partitioned parallel processing and
// report record failures into in.Errors instead of returning them. A returned
// error means the step could not run at all.
type Preparator interface {
	Name() string
	BuildMetadataSetup() MetadataSetup
	ExecuteLogic(ctx context.Context, in Input) (ExecutionContext, error)
	Parameters() map[string]string
}

// Messages of step-wide failures shared by the concrete preparators.
const (
	MessagePropertyNotFound = "Property name does not exist."
	MessageNameTaken        = "New name already exists."
)
