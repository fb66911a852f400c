// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/pdiddy/omvandlare/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export Markdown to a document without the shell",
	Long: `Export reads Markdown from a file, from standard input or with
--clipboard from the system clipboard, and writes a document through
pandoc. Without --output the document gets a timestamped name such as
converted_document_20260314_150926.docx in the configured output
directory. The document is opened afterwards unless --no-open is given.

Engine warnings are printed to stderr; the document is still written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "output path (default: timestamped name in export.output_dir)")
	exportCmd.Flags().String("to", "", "target format (default: export.to, docx)")
	exportCmd.Flags().String("from", "", "source format (default: export.from, markdown)")
	exportCmd.Flags().Bool("clipboard", false, "read the text from the system clipboard")
	exportCmd.Flags().Bool("no-open", false, "do not open the document after export")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	useClipboard, _ := cmd.Flags().GetBool("clipboard")
	text, err := readSource(args, useClipboard, cmd.InOrStdin(), clipboard.ReadAll)
	if err != nil {
		return err
	}

	a, err := cliApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.cfg.Export
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		cfg.To = to
	}
	if from, _ := cmd.Flags().GetString("from"); from != "" {
		cfg.From = from
	}
	if noOpen, _ := cmd.Flags().GetBool("no-open"); noOpen {
		cfg.Open = false
	}

	exp := a.exporter(cfg)
	output, _ := cmd.Flags().GetString("output")
	out, err := exp.Export(cmd.Context(), text, exp.EnsureExtension(output))
	if err != nil {
		if errors.Is(err, export.ErrEmptyInput) {
			return fmt.Errorf("nothing to export: the input is empty")
		}
		return err
	}

	errOut := cmd.ErrOrStderr()
	for _, w := range out.Warnings {
		fmt.Fprintln(errOut, w)
	}
	if out.OpenErr != nil {
		fmt.Fprintf(errOut, "Could not open %s: %v\n", out.Path, out.OpenErr)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out.Path)
	return nil
}

// readSource returns the text to export: the clipboard when requested, the
// named file, or stdin.
func readSource(args []string, useClipboard bool, stdin io.Reader, readClipboard func() (string, error)) (string, error) {
	switch {
	case useClipboard && len(args) > 0:
		return "", fmt.Errorf("--clipboard and a file argument are mutually exclusive")
	case useClipboard:
		text, err := readClipboard()
		if err != nil {
			return "", fmt.Errorf("reading clipboard: %w", err)
		}
		return text, nil
	case len(args) == 1 && args[0] != "-":
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
}
