// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/omvandlare/internal/tui"
)

func runShell(cmd *cobra.Command, args []string) error {
	a, err := newShellApp()
	if err != nil {
		return err
	}
	defer a.Close()

	loc := a.runner.Location()
	a.logger.Info("starting shell", "version", version, "engine", loc.Path, "source", loc.Source)

	return tui.Run(cmd.Context(), a.exporter(a.cfg.Export), tui.WithLogger(a.logger))
}
