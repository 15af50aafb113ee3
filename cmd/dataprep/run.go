package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/dataprep/internal/config"
	"github.com/alexisbeaulieu97/dataprep/internal/engine"
	"github.com/alexisbeaulieu97/dataprep/internal/errorlog"
	"github.com/alexisbeaulieu97/dataprep/internal/logger"
	"github.com/alexisbeaulieu97/dataprep/internal/provenance"
	"github.com/alexisbeaulieu97/dataprep/internal/tui"
)

// maxListedErrors caps the execution errors printed after a plain run.
const maxListedErrors = 20

type runOptions struct {
	ConfigPath     string
	OutputPath     string
	Database       string
	Verbose        bool
	NonInteractive bool
}

var runCmdRunner = runPipeline

func newRunCmd(root *rootFlags) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Check a pipeline definition and execute it",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose = root.verbose
			opts.NonInteractive = opts.NonInteractive || !term.IsTerminal(int(os.Stdout.Fd()))

			if err := validateConfigPath(opts.ConfigPath); err != nil {
				return err
			}

			return runCmdRunner(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to pipeline definition")
	cmd.Flags().StringVarP(&opts.OutputPath, "output", "o", "", "Write the prepared CSV here instead of output.path")
	cmd.Flags().StringVar(&opts.Database, "db", "", "Record provenance in this SQLite database instead of provenance.database")
	cmd.Flags().BoolVar(&opts.NonInteractive, "plain", false, "Disable the interactive progress view")
	cmd.MarkFlagRequired("config") //nolint:errcheck

	return cmd
}

func runPipeline(ctx context.Context, opts runOptions, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.ParseConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.OutputPath != "" {
		cfg.Output.Path = opts.OutputPath
	}

	fallbackLevel := "warn"
	if !opts.NonInteractive {
		fallbackLevel = "error"
	}
	log, err := newLogger(cfg, opts.Verbose, fallbackLevel, errOut)
	if err != nil {
		return err
	}

	ds, err := cfg.LoadDataset()
	if err != nil {
		return err
	}

	engineOpts := []engine.Option{engine.WithLogger(log)}
	if rev, err := provenance.ResolveRevision(cfg.Dir()); err != nil {
		log.With("error", err.Error()).Warn("cannot resolve git revision")
	} else if rev != "" {
		engineOpts = append(engineOpts, engine.WithRevision(rev))
	}

	store, err := openStore(ctx, cfg, opts.Database, log)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		engineOpts = append(engineOpts, engine.WithProvenanceSink(store))
	}

	var program *tea.Program
	var state tui.Model
	dispatch := func(msg tea.Msg) {
		if program != nil {
			program.Send(msg)
			return
		}
		updated, _ := state.Update(msg)
		if m, ok := updated.(tui.Model); ok {
			state = m
		}
	}
	engineOpts = append(engineOpts, engine.WithObserver(tui.Observer(dispatch)))

	p, err := config.BuildPipeline(cfg, ds, nil, engineOpts...)
	if err != nil {
		return err
	}
	state = tui.NewModel(cfg.Name, p.Preparations())

	var programErr error
	done := make(chan struct{})
	if !opts.NonInteractive {
		program = tea.NewProgram(state, tea.WithOutput(errOut))
		go func() {
			_, programErr = program.Run()
			close(done)
		}()
	} else {
		close(done)
	}

	check, err := p.CheckPipelineErrors()
	if err != nil {
		return err
	}
	dispatch(tui.CheckMsg{Result: check})

	var res engine.Result
	var execErr error
	if check.OK() {
		res, execErr = p.ExecutePipeline(ctx)
		dispatch(tui.DoneMsg{Result: res, Err: execErr})
	}

	<-done
	if programErr != nil {
		return programErr
	}
	if opts.NonInteractive {
		fmt.Fprintln(errOut, state.View())
	}

	if !check.OK() {
		return errors.WithHint(
			&engine.PipelineError{Code: check.Code, PlanErrors: check.PlanErrors},
			"run `dataprep check -c "+opts.ConfigPath+"` to list the unmet contracts",
		)
	}
	if execErr != nil {
		return execErr
	}

	if opts.NonInteractive || opts.Verbose {
		printExecutionErrors(errOut, p.Errors().ExecutionErrors())
		fmt.Fprintf(errOut, "run id: %s\n", p.RunID())
	}
	log.With("run_id", p.RunID()).Info("run finished")

	return cfg.WriteDataset(res.Dataset, out)
}

func openStore(ctx context.Context, cfg *config.Config, override string, log *logger.Logger) (*provenance.SQLStore, error) {
	path := override
	if path == "" {
		path = cfg.ResolvePath(cfg.Provenance.Database)
	}
	if path == "" {
		return nil, nil
	}
	store, err := provenance.OpenSQLStore(ctx, path, log)
	if err != nil {
		return nil, errors.WithHint(err, "provenance.database must point to a writable SQLite file")
	}
	return store, nil
}

func printExecutionErrors(w io.Writer, errs []errorlog.ExecutionError) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintf(w, "%d execution error(s):\n", len(errs))
	for i, e := range errs {
		if i == maxListedErrors {
			fmt.Fprintf(w, "  ... and %d more\n", len(errs)-maxListedErrors)
			break
		}
		fmt.Fprintf(w, "  - %s\n", e.Error())
	}
}
