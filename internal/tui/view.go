package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/dataprep/internal/tui/components"
)

// View renders the current state of the model.
func (m Model) View() string {
	var sections []string

	sections = append(sections, titleStyle.Render(fmt.Sprintf("dataprep • %s", m.title())))

	progress := components.NewProgress(m.total).View(m.completed)
	sections = append(sections, sectionStyle.Render("Progress"), progress)

	entries := components.NewStepList(m.order, m.steps).Entries()
	if len(entries) > 0 {
		sections = append(sections, sectionStyle.Render("Steps"), renderStepEntries(entries))
	}

	summary := components.NewSummary(components.SummaryData{
		Total:           m.total,
		Completed:       m.completed,
		Finished:        m.finished,
		Detached:        m.detached,
		Rows:            m.rows(),
		ExecutionErrors: m.result.ExecutionErrors,
		PlanErrors:      m.planErrors,
		Duration:        m.result.Duration,
		Err:             m.err,
	}).View()
	if strings.TrimSpace(summary) != "" {
		sections = append(sections, sectionStyle.Render("Summary"), summaryStyle.Render(summary))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderStepEntries(entries []components.StepEntry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		line := fmt.Sprintf(" %s %s", StatusIcon(entry.Status), entry.ID)
		if entry.Preparator != "" && entry.Preparator != entry.ID {
			line += mutedStyle.Render(fmt.Sprintf(" [%s]", entry.Preparator))
		}
		if entry.Finished() {
			line += fmt.Sprintf(" %d rows", entry.Rows)
		}
		if entry.Errors > 0 {
			line += failureStyle.Render(fmt.Sprintf(", %d error(s)", entry.Errors))
		}
		if entry.Duration > 0 {
			line += fmt.Sprintf(" (%s)", entry.Duration.Truncate(10*time.Millisecond))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) title() string {
	if strings.TrimSpace(m.name) != "" {
		return m.name
	}
	return "pipeline"
}

func (m Model) rows() int {
	if m.result.Dataset == nil {
		return 0
	}
	return m.result.Dataset.Count()
}

// StatusIcon returns the glyph representing a step status.
func StatusIcon(status string) string {
	switch status {
	case components.StatusDone:
		return successStyle.Render("✓")
	case components.StatusRunning:
		return runningStyle.Render("⏳")
	case components.StatusErrors:
		return warningStyle.Render("!")
	default:
		return pendingStyle.Render("…")
	}
}
