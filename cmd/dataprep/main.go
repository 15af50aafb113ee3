package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/alexisbeaulieu97/dataprep/internal/engine"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func reportError(w io.Writer, err error) {
	fmt.Fprintln(w, err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "hint: %s\n", hint)
	}
}

// exitCode maps an error to the process status: the pipeline's termination
// code when execution was refused, 1 otherwise.
func exitCode(err error) int {
	if err == nil {
		return int(engine.TerminationOK)
	}
	var pe *engine.PipelineError
	if errors.As(err, &pe) {
		return int(pe.Code)
	}
	return int(engine.TerminationFailure)
}
