package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/dataprep/internal/config"
	"github.com/alexisbeaulieu97/dataprep/internal/dataset"
	"github.com/alexisbeaulieu97/dataprep/internal/engine"
	"github.com/alexisbeaulieu97/dataprep/pkg/diff"
)

func newDiffCmd(root *rootFlags) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Run a pipeline in memory and show how it changes the input",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateConfigPath(configPath); err != nil {
				return err
			}
			return runDiff(cmd, configPath, root.verbose)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to pipeline definition")
	cmd.MarkFlagRequired("config") //nolint:errcheck

	return cmd
}

func runDiff(cmd *cobra.Command, configPath string, verbose bool) error {
	cfg, err := config.ParseConfig(configPath)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, verbose, "warn", cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	input, err := cfg.LoadDataset()
	if err != nil {
		return err
	}
	p, err := config.BuildPipeline(cfg, input, nil, engine.WithLogger(log))
	if err != nil {
		return err
	}

	res, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	before, err := render(input)
	if err != nil {
		return err
	}
	after, err := render(res.Dataset)
	if err != nil {
		return err
	}

	out, stats := diff.Unified(before, after, cfg.Input.Path, "prepared")
	io.WriteString(cmd.OutOrStdout(), out) //nolint:errcheck
	fmt.Fprintf(cmd.ErrOrStderr(), "%d line(s) removed, %d line(s) added, %d execution error(s)\n",
		stats.Removed, stats.Added, res.ExecutionErrors)
	return nil
}

func render(ds *dataset.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	if err := dataset.WriteCSV(&buf, ds); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
