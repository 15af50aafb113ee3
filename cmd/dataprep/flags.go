package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/dataprep/internal/config"
	"github.com/alexisbeaulieu97/dataprep/internal/logger"
)

func validateConfigPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config file is required")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("config file does not exist: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", abs)
	}

	return nil
}

// newLogger picks the level from the flag, then the definition, then quiet.
func newLogger(cfg *config.Config, verbose bool, fallback string, w io.Writer) (*logger.Logger, error) {
	level := fallback
	if cfg != nil && cfg.Settings.LogLevel != "" {
		level = cfg.Settings.LogLevel
	}
	if verbose {
		level = "debug"
	}
	return logger.New(logger.Options{Level: level, HumanReadable: true, Writer: w})
}
