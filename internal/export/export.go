// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export implements the paste-and-export workflow: validate the
// text buffer, convert it to a document through the engine, open the
// result and remember it.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/omvandlare/internal/convert"
	"github.com/pdiddy/omvandlare/pkg/types"
)

// ErrEmptyInput is the input error: nothing to convert.
var ErrEmptyInput = errors.New("no text to convert")

// filenamePrefix starts every generated default filename.
const filenamePrefix = "converted_document_"

// FilenamePattern matches names produced by DefaultFilename.
var FilenamePattern = regexp.MustCompile(`^converted_document_\d{8}_\d{6}\.[A-Za-z0-9]+$`)

// DefaultFilename returns a timestamped filename such as
// converted_document_20260314_150926.docx.
func DefaultFilename(ext string, now time.Time) string {
	ext = strings.TrimPrefix(ext, ".")
	return filenamePrefix + now.Format("20060102_150405") + "." + ext
}

// Opener launches the OS handler for a file.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// Recorder stores successful exports.
type Recorder interface {
	Record(ctx context.Context, rec types.ExportRecord) (types.ExportRecord, error)
}

// Outcome describes a successful export.
type Outcome struct {
	Path     string
	Bytes    int64
	Warnings []string

	// Notice is the user-facing summary of Warnings, empty when there are none.
	Notice string

	// Opened is true when the OS handler was launched.
	Opened bool

	// OpenErr is set when opening failed. The document still exists.
	OpenErr error
}

// Exporter runs exports with fixed formats. Opener and Recorder are
// optional.
type Exporter struct {
	conv     convert.Converter
	opener   Opener
	recorder Recorder
	cfg      types.ExportConfig
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithOpener opens exported files with o.
func WithOpener(o Opener) Option { return func(e *Exporter) { e.opener = o } }

// WithRecorder stores exports in r.
func WithRecorder(r Recorder) Option { return func(e *Exporter) { e.recorder = r } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(e *Exporter) { e.logger = l } }

// WithClock replaces time.Now for default filenames and records.
func WithClock(now func() time.Time) Option { return func(e *Exporter) { e.now = now } }

// New returns an Exporter converting with conv according to cfg.
func New(conv convert.Converter, cfg types.ExportConfig, opts ...Option) *Exporter {
	if cfg.From == "" {
		cfg.From = types.DefaultFromFormat
	}
	if cfg.To == "" {
		cfg.To = types.DefaultToFormat
	}
	e := &Exporter{conv: conv, cfg: cfg, logger: slog.Default(), now: time.Now}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Format returns the target format.
func (e *Exporter) Format() string { return e.cfg.To }

// Extension returns the file extension for the target format.
func (e *Exporter) Extension() string { return convert.ExtensionForFormat(e.cfg.To) }

// DefaultPath returns a fresh default output path in the configured output
// directory.
func (e *Exporter) DefaultPath() string {
	name := DefaultFilename(e.Extension(), e.now())
	if e.cfg.OutputDir == "" {
		return name
	}
	return filepath.Join(e.cfg.OutputDir, name)
}

// Export converts text into a document at dest and returns dest unchanged
// in the Outcome. An empty dest uses DefaultPath, creating the output
// directory if needed. Blank text fails with ErrEmptyInput before the
// engine is involved. Failures to open or record the file are reported in
// the Outcome and logs, never as the returned error.
func (e *Exporter) Export(ctx context.Context, text, dest string) (Outcome, error) {
	content := strings.TrimSpace(text)
	if content == "" {
		return Outcome{}, ErrEmptyInput
	}
	if dest == "" {
		if e.cfg.OutputDir != "" {
			if err := os.MkdirAll(e.cfg.OutputDir, 0o755); err != nil {
				return Outcome{}, fmt.Errorf("creating output directory %s: %w", e.cfg.OutputDir, err)
			}
		}
		dest = e.DefaultPath()
	}

	e.logger.InfoContext(ctx, "exporting", "path", dest, "from", e.cfg.From, "to", e.cfg.To, "chars", len(content))

	path, diag, err := convert.ConvertText(ctx, e.conv, content, e.cfg.To, e.cfg.From, dest)
	if err != nil {
		e.logger.ErrorContext(ctx, "export failed", "path", dest, "error", err)
		return Outcome{Warnings: diag.Warnings()}, fmt.Errorf("exporting to %s: %w", dest, err)
	}

	out := Outcome{
		Path:     path,
		Warnings: diag.Warnings(),
		Notice:   diag.Notice(),
	}
	if info, err := os.Stat(path); err == nil {
		out.Bytes = info.Size()
	} else {
		return out, fmt.Errorf("exporting to %s: %w", dest, &convert.ConversionError{
			Kind:  convert.ErrConversionFailed,
			Cause: err,
			Path:  path,
			Hint:  "output file missing after conversion",
		})
	}
	for _, w := range out.Warnings {
		e.logger.WarnContext(ctx, "engine warning", "line", w)
	}

	if e.cfg.Open && e.opener != nil {
		if err := e.opener.Open(ctx, path); err != nil {
			e.logger.WarnContext(ctx, "could not open exported file", "path", path, "error", err)
			out.OpenErr = err
		} else {
			out.Opened = true
		}
	}

	e.record(ctx, out)
	e.logger.InfoContext(ctx, "export complete", "path", path, "bytes", out.Bytes, "warnings", len(out.Warnings))
	return out, nil
}

func (e *Exporter) record(ctx context.Context, out Outcome) {
	if e.recorder == nil {
		return
	}
	path := out.Path
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	_, err := e.recorder.Record(ctx, types.ExportRecord{
		Path:      path,
		From:      e.cfg.From,
		To:        e.cfg.To,
		Bytes:     out.Bytes,
		Warnings:  len(out.Warnings),
		Opened:    out.Opened,
		CreatedAt: e.now(),
	})
	if err != nil {
		e.logger.WarnContext(ctx, "could not record export history", "error", err)
	}
}

// EnsureExtension appends the target extension when path has none, the way
// a save dialog completes a typed name.
func (e *Exporter) EnsureExtension(path string) string {
	if path == "" || filepath.Ext(path) != "" {
		return path
	}
	return path + "." + e.Extension()
}
