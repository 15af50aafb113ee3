package engine

import (
	"time"

	"github.com/alexisbeaulieu97/dataprep/internal/logger"
	"github.com/alexisbeaulieu97/dataprep/internal/provenance"
)

// EventKind identifies a progress event.
type EventKind string

const (
	EventCheckFinished    EventKind = "check_finished"
	EventStepStarted      EventKind = "step_started"
	EventStepFinished     EventKind = "step_finished"
	EventPipelineFinished EventKind = "pipeline_finished"
)

// Event is emitted to observers while a pipeline is checked and executed.
type Event struct {
	Kind       EventKind
	Step       string
	Preparator string
	Position   int
	Total      int
	Errors     int
	Rows       int
	Duration   time.Duration
	Time       time.Time
}

// Observer receives events synchronously from the goroutine running the
// pipeline. It must not block for long.
type Observer func(Event)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithName sets the pipeline name used in logs.
func WithName(name string) Option {
	return func(p *Pipeline) { p.name = name }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *logger.Logger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// WithParallelism bounds how many partitions a step processes at once.
// Values below 1 mean no bound.
func WithParallelism(n int) Option {
	return func(p *Pipeline) { p.parallelism = n }
}

// WithProvenanceSink adds sinks that receive a copy of every provenance record.
func WithProvenanceSink(sinks ...provenance.Sink) Option {
	return func(p *Pipeline) {
		for _, s := range sinks {
			if s != nil {
				p.sinks = append(p.sinks, s)
			}
		}
	}
}

// WithObserver registers a progress observer.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) {
		if o != nil {
			p.observers = append(p.observers, o)
		}
	}
}

// WithRevision sets the source revision stamped on provenance records.
func WithRevision(rev string) Option {
	return func(p *Pipeline) { p.revision = rev }
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(p *Pipeline) {
		if id != "" {
			p.runID = id
		}
	}
}

func (p *Pipeline) emit(e Event) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	for _, o := range p.observers {
		o(e)
	}
}
