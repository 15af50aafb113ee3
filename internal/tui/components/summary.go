package components

import (
	"fmt"
	"strings"
	"time"
)

// SummaryData aggregates counts for rendering summaries.
type SummaryData struct {
	Total           int
	Completed       int
	Finished        bool
	Detached        bool
	Rows            int
	ExecutionErrors int
	PlanErrors      []string
	Duration        time.Duration
	Err             error
}

// Summary renders a textual execution summary.
type Summary struct {
	data SummaryData
}

// NewSummary creates a new Summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

// View renders the summary.
func (s Summary) View() string {
	var lines []string

	if len(s.data.PlanErrors) > 0 {
		lines = append(lines, fmt.Sprintf("Check failed with %d plan error(s), nothing was executed:", len(s.data.PlanErrors)))
		for _, pe := range s.data.PlanErrors {
			lines = append(lines, "  ✗ "+pe)
		}
		return strings.Join(lines, "\n")
	}

	if s.data.Total > 0 {
		lines = append(lines, fmt.Sprintf("Steps: %d/%d completed", s.data.Completed, s.data.Total))
	}

	switch {
	case s.data.Err != nil:
		lines = append(lines, fmt.Sprintf("Execution failed: %v", s.data.Err))
	case s.data.Detached:
		lines = append(lines, "Display detached, the pipeline keeps running")
	case s.data.Finished && s.data.Total > 0:
		lines = append(lines, fmt.Sprintf("Rows: %d", s.data.Rows))
		if s.data.ExecutionErrors == 0 {
			lines = append(lines, "Pipeline completed without execution errors")
		} else {
			lines = append(lines, fmt.Sprintf("Pipeline completed with %d execution error(s)", s.data.ExecutionErrors))
		}
		if s.data.Duration > 0 {
			lines = append(lines, fmt.Sprintf("Took %s", s.data.Duration.Truncate(time.Millisecond)))
		}
	}

	return strings.Join(lines, "\n")
}
