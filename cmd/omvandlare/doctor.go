// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/omvandlare/internal/convert"
	"github.com/pdiddy/omvandlare/internal/engine"
	"github.com/pdiddy/omvandlare/pkg/types"
)

const doctorSample = "# Hello World\nThis is a **test** document."

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that pandoc is found and working",
	Long: `Doctor reports where pandoc was found (configured path, bundle
directory or PATH), its version and the number of supported input and
output formats, then converts a small Markdown sample to HTML.

With --write-config the effective configuration is written as YAML
instead, to the given path or "-" for stdout.`,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().String("write-config", "", `write the effective configuration as YAML to this path ("-" for stdout)`)

	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	a, err := cliApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if path, _ := cmd.Flags().GetString("write-config"); path != "" {
		return writeConfig(cmd.OutOrStdout(), path, a.cfg)
	}

	if ok := diagnose(cmd.Context(), cmd.OutOrStdout(), a.runner.Location(), a.pandoc); !ok {
		return fmt.Errorf("pandoc is not usable; see https://pandoc.org/installing.html")
	}
	return nil
}

// probe is what diagnose needs from the converter.
type probe interface {
	convert.Converter
	Version(ctx context.Context) (string, error)
	Formats(ctx context.Context) (convert.Formats, error)
}

// diagnose prints a self-check report to w and reports whether the engine
// converted the sample.
func diagnose(ctx context.Context, w io.Writer, loc engine.Location, p probe) bool {
	fmt.Fprintf(w, "omvandlare %s\n\n", version)

	if !loc.Found() {
		fmt.Fprintln(w, "✗ pandoc not found")
		if loc.Bundled() {
			fmt.Fprintf(w, "  bundle directory: %s\n", loc.BundleDir)
		}
		fmt.Fprintln(w, "  Install pandoc or place it next to the executable.")
		return false
	}

	fmt.Fprintf(w, "pandoc path:    %s (%s)\n", loc.Path, loc.Source)
	if v, err := p.Version(ctx); err != nil {
		fmt.Fprintf(w, "pandoc version: unknown (%v)\n", err)
	} else {
		fmt.Fprintf(w, "pandoc version: %s\n", v)
	}

	if f, err := p.Formats(ctx); err != nil {
		fmt.Fprintf(w, "formats:        unknown (%v)\n", err)
	} else {
		fmt.Fprintf(w, "input formats:  %d\n", len(f.Input))
		fmt.Fprintf(w, "output formats: %d\n", len(f.Output))
	}

	html, err := convert.MarkdownToHTML(ctx, p, doctorSample)
	if err != nil {
		fmt.Fprintf(w, "\n✗ sample conversion failed: %v\n", err)
		return false
	}
	fmt.Fprintln(w, "\n✓ pandoc is working correctly")
	fmt.Fprintln(w, "Sample conversion (Markdown to HTML):")
	fmt.Fprintln(w, strings.TrimSpace(html))
	return true
}

// writeConfig writes cfg as YAML to path, or to stdout when path is "-".
func writeConfig(stdout io.Writer, path string, cfg types.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintln(stdout, "Wrote", path)
	return nil
}
