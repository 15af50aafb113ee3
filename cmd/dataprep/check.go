package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/dataprep/internal/config"
	"github.com/alexisbeaulieu97/dataprep/internal/engine"
)

type checkOptions struct {
	ConfigPath string
	Verbose    bool
}

func newCheckCmd(root *rootFlags) *cobra.Command {
	opts := checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Statically check the contracts of a pipeline definition without reading data",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose = root.verbose
			if err := validateConfigPath(opts.ConfigPath); err != nil {
				return err
			}
			return runCheck(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to pipeline definition")
	cmd.MarkFlagRequired("config") //nolint:errcheck

	return cmd
}

func runCheck(opts checkOptions, out, errOut io.Writer) error {
	cfg, err := config.ParseConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg, opts.Verbose, "warn", errOut)
	if err != nil {
		return err
	}

	p, err := config.BuildPipeline(cfg, nil, nil, engine.WithLogger(log))
	if err != nil {
		return err
	}

	check, err := p.CheckPipelineErrors()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, check.String())
	if !check.OK() {
		return &engine.PipelineError{Code: check.Code, PlanErrors: check.PlanErrors}
	}
	return nil
}
