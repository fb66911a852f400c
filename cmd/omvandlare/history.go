// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/omvandlare/internal/history"
	"github.com/pdiddy/omvandlare/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently exported documents",
	Long: `History lists documents exported from the shell or the export
command, newest first. Records live in history.db in the data directory.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	historyCmd.Flags().Bool("yaml", false, "output as YAML")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := cliApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.history == nil {
		return fmt.Errorf("export history is disabled (history.enabled=false) or unavailable")
	}

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := a.history.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return history.WriteJSON(out, records)
	}
	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		return history.WriteYAML(out, records)
	}
	printHistory(out, records)
	return nil
}

func printHistory(w io.Writer, records []types.ExportRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No exports yet.")
		return
	}

	fmt.Fprintf(w, "%-19s  %-6s  %8s  %-4s  %s\n", "When", "Format", "Bytes", "Warn", "Path")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, r := range records {
		fmt.Fprintf(w, "%-19s  %-6s  %8d  %-4d  %s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.To, r.Bytes, r.Warnings, r.Path)
	}
	fmt.Fprintf(w, "\n%d exports\n", len(records))
}
