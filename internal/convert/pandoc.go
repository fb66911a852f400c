// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pdiddy/omvandlare/pkg/types"
)

// Engine is the part of engine.Runner the converter needs.
type Engine interface {
	Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error
	Version(ctx context.Context) (string, error)
}

// Exit codes pandoc uses for unknown readers and writers.
const (
	exitUnknownReader = 21
	exitUnknownWriter = 22
)

// Pandoc implements Converter by shelling out to pandoc. It depends on an
// Engine injected at construction time.
type Pandoc struct {
	engine Engine
	logger *slog.Logger
}

// NewPandoc returns a converter that runs conversions through e.
func NewPandoc(e Engine, logger *slog.Logger) *Pandoc {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pandoc{engine: e, logger: logger}
}

// Convert runs one engine process for req. The engine's stderr is captured
// into a buffer owned by this call.
func (p *Pandoc) Convert(ctx context.Context, req Request) (Result, error) {
	from := req.From
	if from == "" {
		from = types.DefaultFromFormat
	}
	if req.To == "" {
		return Result{}, &ConversionError{Kind: ErrUnsupportedFormat, Hint: "no target format given"}
	}
	if req.OutputPath == "" && IsBinaryFormat(req.To) {
		return Result{}, fmt.Errorf("%w: %s", ErrOutputRequired, req.To)
	}

	args := []string{"--from", from, "--to", req.To}
	if req.OutputPath != "" {
		args = append(args, "--output", req.OutputPath)
	}

	var stdin io.Reader
	if req.InputPath != "" {
		args = append(args, req.InputPath)
	} else {
		stdin = bytes.NewReader(req.Input)
	}

	var stdout, stderr bytes.Buffer
	p.logger.DebugContext(ctx, "running engine", "args", args)
	runErr := p.engine.Run(ctx, args, stdin, &stdout, &stderr)

	diag := ParseDiagnostics(stderr.String())
	for _, line := range diag.Lines {
		p.logger.DebugContext(ctx, "engine diagnostic", "line", line)
	}

	if runErr != nil {
		return Result{Diagnostics: diag}, p.classify(runErr, stderr.String(), req)
	}

	res := Result{Diagnostics: diag}
	if req.OutputPath == "" {
		res.Output = stdout.Bytes()
		return res, nil
	}

	if _, err := os.Stat(req.OutputPath); err != nil {
		return res, &ConversionError{
			Kind:  ErrConversionFailed,
			Cause: err,
			Path:  req.OutputPath,
			Hint:  "engine reported success but the output file is missing",
		}
	}
	res.OutputPath = req.OutputPath
	return res, nil
}

// classify maps a failed engine run onto the capability's failure kinds.
func (p *Pandoc) classify(err error, stderr string, req Request) error {
	if errors.Is(err, ErrEngineNotFound) {
		return &ConversionError{
			Kind:  ErrEngineNotFound,
			Cause: err,
			Hint:  "install pandoc or place it next to the executable (see https://pandoc.org/installing.html)",
		}
	}

	kind := ErrConversionFailed
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		switch coded.ExitCode() {
		case exitUnknownReader, exitUnknownWriter:
			kind = ErrUnsupportedFormat
		}
	}
	if mentionsUnknownFormat(stderr) {
		kind = ErrUnsupportedFormat
	}

	ce := &ConversionError{
		Kind:   kind,
		Cause:  err,
		Stderr: strings.TrimSpace(stderr),
		Path:   req.InputPath,
	}
	if kind == ErrUnsupportedFormat {
		ce.Hint = fmt.Sprintf("check the formats (from %q, to %q) with the formats command", req.From, req.To)
	}
	return ce
}

func mentionsUnknownFormat(stderr string) bool {
	s := strings.ToLower(stderr)
	for _, marker := range []string{
		"unknown input format",
		"unknown output format",
		"unknown reader",
		"unknown writer",
	} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// Version returns the engine's version line.
func (p *Pandoc) Version(ctx context.Context) (string, error) {
	return p.engine.Version(ctx)
}

// Formats lists the input and output formats the engine supports.
type Formats struct {
	Input  []string `json:"input" yaml:"input"`
	Output []string `json:"output" yaml:"output"`
}

// SupportsOutput reports whether format is a known output format.
func (f Formats) SupportsOutput(format string) bool {
	return contains(f.Output, baseFormat(format))
}

// SupportsInput reports whether format is a known input format.
func (f Formats) SupportsInput(format string) bool {
	return contains(f.Input, baseFormat(format))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// Formats queries the engine for its supported formats.
func (p *Pandoc) Formats(ctx context.Context) (Formats, error) {
	in, err := p.listLines(ctx, "--list-input-formats")
	if err != nil {
		return Formats{}, err
	}
	out, err := p.listLines(ctx, "--list-output-formats")
	if err != nil {
		return Formats{}, err
	}
	return Formats{Input: in, Output: out}, nil
}

func (p *Pandoc) listLines(ctx context.Context, flag string) ([]string, error) {
	var stdout, stderr bytes.Buffer
	if err := p.engine.Run(ctx, []string{flag}, nil, &stdout, &stderr); err != nil {
		return nil, p.classify(err, stderr.String(), Request{})
	}
	var lines []string
	for line := range strings.SplitSeq(stdout.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
