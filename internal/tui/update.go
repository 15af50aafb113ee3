package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/dataprep/internal/tui/components"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StepStartMsg:
		m.ensureStep(msg.Event.Step, msg.Event.Preparator)
		step := m.steps[msg.Event.Step]
		step.Status = components.StatusRunning
		m.steps[msg.Event.Step] = step
		return m, nil
	case StepCompleteMsg:
		id := msg.Event.Step
		if id == "" {
			return m, nil
		}
		m.ensureStep(id, msg.Event.Preparator)
		step := m.steps[id]
		if !step.Finished() {
			m.completed++
		}
		step.Status = components.StatusDone
		if msg.Event.Errors > 0 {
			step.Status = components.StatusErrors
		}
		step.Errors = msg.Event.Errors
		step.Rows = msg.Event.Rows
		step.Duration = msg.Event.Duration
		m.steps[id] = step
		return m, nil
	case CheckMsg:
		m.planErrors = nil
		for _, pe := range msg.Result.PlanErrors {
			m.planErrors = append(m.planErrors, pe.Error())
		}
		if !msg.Result.OK() {
			m.finished = true
			return m, tea.Quit
		}
		return m, nil
	case DoneMsg:
		m.result = msg.Result
		m.err = msg.Err
		m.finished = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.detached = !m.finished
			return m, tea.Quit
		}
	case tea.QuitMsg:
		m.finished = true
		return m, nil
	}

	return m, nil
}
