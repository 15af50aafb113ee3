package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/dataprep/internal/provenance"
)

func newHistoryCmd(root *rootFlags) *cobra.Command {
	var dbPath, runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the provenance records of a run",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(nil, root.verbose, "warn", cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			store, err := provenance.OpenSQLStore(cmd.Context(), dbPath, log)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.Records(cmd.Context(), runID)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return errors.WithHint(
					errors.Newf("no provenance records for run %s", runID),
					"the run id is printed at the end of `dataprep run --plain`",
				)
			}
			return printHistory(cmd.OutOrStdout(), records)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the provenance database")
	cmd.Flags().StringVar(&runID, "run", "", "Run id to show")
	cmd.MarkFlagRequired("db")  //nolint:errcheck
	cmd.MarkFlagRequired("run") //nolint:errcheck

	return cmd
}

func printHistory(out io.Writer, records []provenance.Record) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "POS\tSTEP\tPREPARATOR\tROWS\tERRORS\tDURATION\tREVISION")
	for _, r := range records {
		rev := r.Revision
		if len(rev) > 12 {
			rev = rev[:12]
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d -> %d\t%d\t%s\t%s\n",
			r.Position, r.Step, r.Preparator, r.InputRows, r.OutputRows, r.ErrorCount, r.Duration, rev)
	}
	return w.Flush()
}
