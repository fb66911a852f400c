// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert wraps the external conversion engine behind a narrow
// capability interface. The wrapper adds only existence checks and default
// parameters; the engine does the actual document transformation.
package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/omvandlare/pkg/types"
)

// Request describes one conversion. Exactly one of Input or InputPath
// supplies the content.
type Request struct {
	Input     []byte
	InputPath string

	// From defaults to markdown.
	From string
	To   string

	// OutputPath makes the engine write a file instead of returning text.
	OutputPath string
}

// Result is the outcome of a successful conversion.
type Result struct {
	// Output holds the converted content when no OutputPath was requested.
	Output []byte

	// OutputPath echoes the requested path once the file exists.
	OutputPath string

	// Diagnostics are the engine's stderr lines for this call only.
	Diagnostics Diagnostics
}

// Converter turns content in one format into another. It fails with errors
// matching ErrEngineNotFound, ErrUnsupportedFormat or ErrConversionFailed.
type Converter interface {
	Convert(ctx context.Context, req Request) (Result, error)
}

// binaryFormats cannot be written to stdout by the engine.
var binaryFormats = map[string]bool{
	"docx": true,
	"odt":  true,
	"epub": true, "epub2": true, "epub3": true,
	"pdf":  true,
	"pptx": true,
}

// IsBinaryFormat reports whether the target format needs an output file.
func IsBinaryFormat(format string) bool {
	return binaryFormats[strings.ToLower(baseFormat(format))]
}

// baseFormat strips extension toggles such as "markdown+smart".
func baseFormat(format string) string {
	if i := strings.IndexAny(format, "+-"); i > 0 {
		return format[:i]
	}
	return format
}

var extensionFormats = map[string]string{
	".md":       "markdown",
	".markdown": "markdown",
	".txt":      "markdown",
	".html":     "html",
	".htm":      "html",
	".docx":     "docx",
	".odt":      "odt",
	".epub":     "epub",
	".rst":      "rst",
	".tex":      "latex",
	".org":      "org",
	".textile":  "textile",
	".ipynb":    "ipynb",
	".json":     "json",
}

// FormatForExtension maps a file extension to an engine format name, or ""
// when the extension is not recognized.
func FormatForExtension(ext string) string {
	return extensionFormats[strings.ToLower(ext)]
}

// ExtensionForFormat returns the file extension (without dot) conventionally
// used for a target format.
func ExtensionForFormat(format string) string {
	switch f := strings.ToLower(baseFormat(format)); f {
	case "markdown", "gfm", "commonmark", "markdown_strict":
		return "md"
	case "latex":
		return "tex"
	case "plain":
		return "txt"
	case "html", "html4", "html5":
		return "html"
	case "epub2", "epub3":
		return "epub"
	default:
		return f
	}
}

// ConvertText converts text to the target format. With a non-empty
// outputPath the engine writes the file and the path is returned; otherwise
// the converted text is returned.
func ConvertText(ctx context.Context, c Converter, text, to, from, outputPath string) (string, Diagnostics, error) {
	if from == "" {
		from = types.DefaultFromFormat
	}
	res, err := c.Convert(ctx, Request{
		Input:      []byte(text),
		From:       from,
		To:         to,
		OutputPath: outputPath,
	})
	if err != nil {
		return "", res.Diagnostics, err
	}
	if outputPath != "" {
		return res.OutputPath, res.Diagnostics, nil
	}
	return string(res.Output), res.Diagnostics, nil
}

// ConvertFile converts the file at inputPath. The source format is inferred
// from its extension, falling back to markdown.
func ConvertFile(ctx context.Context, c Converter, inputPath, to, outputPath string) (string, Diagnostics, error) {
	if _, err := os.Stat(inputPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", Diagnostics{}, &FileNotFoundError{Path: inputPath}
		}
		return "", Diagnostics{}, err
	}

	from := FormatForExtension(filepath.Ext(inputPath))
	if from == "" {
		from = types.DefaultFromFormat
	}

	res, err := c.Convert(ctx, Request{
		InputPath:  inputPath,
		From:       from,
		To:         to,
		OutputPath: outputPath,
	})
	if err != nil {
		return "", res.Diagnostics, err
	}
	if outputPath != "" {
		return res.OutputPath, res.Diagnostics, nil
	}
	return string(res.Output), res.Diagnostics, nil
}

// MarkdownToHTML converts Markdown text to an HTML fragment.
func MarkdownToHTML(ctx context.Context, c Converter, markdown string) (string, error) {
	out, _, err := ConvertText(ctx, c, markdown, "html", "markdown", "")
	return out, err
}

// MarkdownToPDF writes Markdown text as a PDF at outputPath and returns
// the path. The engine needs a PDF engine such as pdflatex installed.
func MarkdownToPDF(ctx context.Context, c Converter, markdown, outputPath string) (string, error) {
	out, _, err := ConvertText(ctx, c, markdown, "pdf", "markdown", outputPath)
	return out, err
}

// HTMLToMarkdown converts HTML text to Markdown.
func HTMLToMarkdown(ctx context.Context, c Converter, html string) (string, error) {
	out, _, err := ConvertText(ctx, c, html, "markdown", "html", "")
	return out, err
}
