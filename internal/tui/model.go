package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/dataprep/internal/engine"
	"github.com/alexisbeaulieu97/dataprep/internal/tui/components"
)

// StepStartMsg indicates a step has started executing.
type StepStartMsg struct {
	Event engine.Event
}

// StepCompleteMsg reports that a step has finished execution.
type StepCompleteMsg struct {
	Event engine.Event
}

// CheckMsg carries the outcome of the static check.
type CheckMsg struct {
	Result engine.CheckResult
}

// DoneMsg is sent once the pipeline returned.
type DoneMsg struct {
	Result engine.Result
	Err    error
}

// Model contains the Bubbletea state for a pipeline run.
type Model struct {
	name       string
	steps      map[string]components.StepEntry
	order      []string
	total      int
	completed  int
	planErrors []string
	result     engine.Result
	err        error
	finished   bool
	detached   bool
}

// NewModel constructs a model listing the preparations of a pipeline.
func NewModel(name string, preparations []*engine.Preparation) Model {
	m := Model{
		name:  name,
		steps: make(map[string]components.StepEntry, len(preparations)),
		order: make([]string, 0, len(preparations)),
	}
	for _, prep := range preparations {
		m.ensureStep(prep.ID(), prep.Preparator().Name())
	}
	return m
}

// EventMsg turns an engine event into the message the model handles. Events
// without a display counterpart map to nil.
func EventMsg(e engine.Event) tea.Msg {
	switch e.Kind {
	case engine.EventStepStarted:
		return StepStartMsg{Event: e}
	case engine.EventStepFinished:
		return StepCompleteMsg{Event: e}
	default:
		return nil
	}
}

// Observer forwards pipeline events to send, typically (*tea.Program).Send.
func Observer(send func(tea.Msg)) engine.Observer {
	return func(e engine.Event) {
		if msg := EventMsg(e); msg != nil {
			send(msg)
		}
	}
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return nil
}

// TotalSteps returns the total number of steps tracked by the model.
func (m Model) TotalSteps() int {
	return m.total
}

// CompletedSteps returns the number of completed steps.
func (m Model) CompletedSteps() int {
	return m.completed
}

// IsFinished reports whether the pipeline returned.
func (m Model) IsFinished() bool {
	return m.finished
}

// Detached reports whether the user closed the display before the end.
func (m Model) Detached() bool {
	return m.detached
}

func (m *Model) ensureStep(id, preparator string) {
	if id == "" {
		return
	}
	if _, exists := m.steps[id]; !exists {
		m.steps[id] = components.StepEntry{ID: id, Preparator: preparator, Status: components.StatusPending}
		m.order = append(m.order, id)
		m.total++
	}
}
