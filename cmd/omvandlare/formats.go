// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/omvandlare/internal/convert"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the input and output formats pandoc supports",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := cliApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := a.pandoc.Formats(cmd.Context())
		if err != nil {
			return err
		}
		jsonOutput, _ := cmd.Flags().GetBool("json")
		return printFormats(cmd.OutOrStdout(), f, jsonOutput)
	},
}

func init() {
	formatsCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(formatsCmd)
}

func printFormats(w io.Writer, f convert.Formats, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string][]string{"input": f.Input, "output": f.Output})
	}
	fmt.Fprintf(w, "Input formats (%d):\n  %s\n\n", len(f.Input), strings.Join(f.Input, " "))
	fmt.Fprintf(w, "Output formats (%d):\n  %s\n", len(f.Output), strings.Join(f.Output, " "))
	return nil
}
