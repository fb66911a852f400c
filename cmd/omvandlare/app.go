// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/omvandlare/internal/convert"
	"github.com/pdiddy/omvandlare/internal/engine"
	"github.com/pdiddy/omvandlare/internal/export"
	"github.com/pdiddy/omvandlare/internal/history"
	"github.com/pdiddy/omvandlare/internal/logging"
	"github.com/pdiddy/omvandlare/internal/opener"
	"github.com/pdiddy/omvandlare/pkg/types"
)

// app holds the components one command invocation works with.
type app struct {
	cfg     types.Config
	logger  *slog.Logger
	runner  *engine.Runner
	pandoc  *convert.Pandoc
	history *history.Store
	closers []io.Closer
}

// newApp loads configuration and wires engine discovery, the converter and
// the optional history store. Logs go to logOut.
func newApp(logOut io.Writer) (*app, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return buildApp(cfg, logging.New(cfg.Log, logOut)), nil
}

// newShellApp is newApp for the interactive shell: logs go to a file in the
// data directory so they do not corrupt the screen.
func newShellApp() (*app, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	logger, f, err := logging.OpenFile(cfg.Log, cfg.History.DataDir)
	if err != nil {
		logger = logging.New(cfg.Log, io.Discard)
	}
	a := buildApp(cfg, logger)
	if f != nil {
		a.closers = append(a.closers, f)
	}
	return a, nil
}

func buildApp(cfg types.Config, logger *slog.Logger) *app {
	slog.SetDefault(logger)

	loc := engine.Locate(cfg.Engine, logger)
	runner := engine.NewRunner(loc, cfg.Engine.Timeout)
	a := &app{
		cfg:    cfg,
		logger: logger,
		runner: runner,
		pandoc: convert.NewPandoc(runner, logger),
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.DataDir)
		if err != nil {
			logger.Warn("export history disabled", "dir", cfg.History.DataDir, "error", err)
		} else {
			a.history = store
			a.closers = append(a.closers, store)
		}
	}
	return a
}

// exporter returns the export workflow with cfg overrides applied.
func (a *app) exporter(cfg types.ExportConfig) *export.Exporter {
	opts := []export.Option{
		export.WithLogger(a.logger),
		export.WithOpener(opener.New()),
	}
	if a.history != nil {
		opts = append(opts, export.WithRecorder(a.history))
	}
	return export.New(a.pandoc, cfg, opts...)
}

// Close releases the history database and log file.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Debug("closing resource", "error", err)
		}
	}
}

// cliApp builds the app for a non-interactive command, logging to stderr.
func cliApp(cmd *cobra.Command) (*app, error) {
	return newApp(cmd.ErrOrStderr())
}

