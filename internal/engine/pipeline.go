// Package engine checks and executes preparation pipelines.
//
// A pipeline goes through two phases. The check phase walks the steps once, in
// order, and propagates the metadata each step asserts so that a later step's
// prerequisites are checked against what the earlier steps produce. Any unmet
// prerequisite is a plan error and refuses execution. The execute phase runs
// the steps in order, each one over the partitions of the dataset in parallel,
// and collects record failures as execution errors without stopping.
package engine

import (
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/dataprep/internal/dataset"
	"github.com/alexisbeaulieu97/dataprep/internal/errorlog"
	"github.com/alexisbeaulieu97/dataprep/internal/logger"
	"github.com/alexisbeaulieu97/dataprep/internal/metadata"
	"github.com/alexisbeaulieu97/dataprep/internal/provenance"
)

// Pipeline owns an ordered list of preparations, the dataset they transform
// and the metadata, error and provenance repositories of one run.
type Pipeline struct {
	mu sync.RWMutex

	name        string
	runID       string
	revision    string
	parallelism int
	log         *logger.Logger
	observers   []Observer
	sinks       []provenance.Sink

	state        State
	dataset      *dataset.Dataset
	preparations []*Preparation
	metadata     *metadata.Repository
	errors       *errorlog.Repository
	provenance   *provenance.Repository
}

// New creates a pipeline in the Building state over ds.
func New(ds *dataset.Dataset, opts ...Option) *Pipeline {
	p := &Pipeline{
		runID:      uuid.NewString(),
		log:        logger.Nop(),
		state:      StateBuilding,
		dataset:    ds,
		metadata:   metadata.NewRepository(),
		errors:     errorlog.NewRepository(),
		provenance: provenance.NewRepository(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.WithFields(map[string]any{"run_id": p.runID, "pipeline": p.name})
	return p
}

// AddPreparation appends prep and declares its contract right away.
func (p *Pipeline) AddPreparation(prep *Preparation) error {
	if prep == nil || prep.preparator == nil {
		return errors.New("add preparation: preparation has no preparator")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateBuilding {
		return invalidState("add preparation", p.state)
	}
	if prep.pipeline != nil {
		return ErrAlreadyBound
	}

	prep.bind(p, len(p.preparations))
	prep.declareContract()
	p.preparations = append(p.preparations, prep)
	return nil
}

// DeclareMetadata registers facts known about the input before any step runs,
// such as the date pattern of a raw column.
func (p *Pipeline) DeclareMetadata(facts ...metadata.Metadata) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateBuilding {
		return invalidState("declare metadata", p.state)
	}
	for _, m := range facts {
		p.metadata.Register(m)
	}
	return nil
}

func (p *Pipeline) Name() string  { return p.name }
func (p *Pipeline) RunID() string { return p.runID }

func (p *Pipeline) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Dataset returns the current dataset: the input until execution, then the
// output of the last executed step.
func (p *Pipeline) Dataset() *dataset.Dataset {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.dataset
}

func (p *Pipeline) Preparations() []*Preparation {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.preparations)
}

func (p *Pipeline) Errors() *errorlog.Repository       { return p.errors }
func (p *Pipeline) Metadata() *metadata.Repository     { return p.metadata }
func (p *Pipeline) Provenance() *provenance.Repository { return p.provenance }

func (p *Pipeline) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}
