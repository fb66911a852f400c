// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/omvandlare/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert between any formats pandoc supports",
	Long: `Convert runs a single pandoc conversion. With a file argument the
source format is inferred from the extension; otherwise standard input is
read as --from (default markdown). Text formats are written to stdout
unless --output is given; binary formats such as docx require --output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("to", "html", "target format")
	convertCmd.Flags().String("from", "", "source format for stdin input (default: markdown)")
	convertCmd.Flags().StringP("output", "o", "", "output file")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	to, _ := cmd.Flags().GetString("to")
	from, _ := cmd.Flags().GetString("from")
	output, _ := cmd.Flags().GetString("output")

	a, err := cliApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	var (
		result string
		diag   convert.Diagnostics
	)
	if len(args) == 1 && args[0] != "-" {
		result, diag, err = convert.ConvertFile(cmd.Context(), a.pandoc, args[0], to, output)
	} else {
		data, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("reading stdin: %w", readErr)
		}
		result, diag, err = convert.ConvertText(cmd.Context(), a.pandoc, string(data), to, from, output)
	}

	for _, w := range diag.Warnings() {
		fmt.Fprintln(cmd.ErrOrStderr(), w)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if output != "" {
		fmt.Fprintln(out, result)
		return nil
	}
	fmt.Fprint(out, result)
	if !strings.HasSuffix(result, "\n") {
		fmt.Fprintln(out)
	}
	return nil
}
