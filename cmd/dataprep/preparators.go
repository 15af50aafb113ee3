package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/dataprep/internal/preparator"
)

func newPreparatorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preparators",
		Short: "List the step types a pipeline definition can use",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TYPE\tDESCRIPTION")
			for _, d := range preparator.Default.Descriptors() {
				fmt.Fprintf(w, "%s\t%s\n", d.Name, d.Description)
			}
			return w.Flush()
		},
	}

	return cmd
}
