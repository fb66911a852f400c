// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/pdiddy/omvandlare/internal/engine"
)

// Failure kinds of the Converter capability. Match them with errors.Is.
var (
	ErrEngineNotFound    = engine.ErrNotFound
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrConversionFailed  = errors.New("conversion failed")

	// ErrOutputRequired is returned before invoking the engine when a binary
	// target format is requested without an output path.
	ErrOutputRequired = errors.New("output path required for binary format")
)

// maxStderr truncates the engine output embedded in error messages.
const maxStderr = 500

// ConversionError carries the engine's raw diagnostic text alongside the
// failure kind.
type ConversionError struct {
	// Kind is one of ErrEngineNotFound, ErrUnsupportedFormat or
	// ErrConversionFailed.
	Kind   error
	Cause  error
	Stderr string
	Path   string
	Hint   string
}

func (e *ConversionError) Error() string {
	msg := e.Kind.Error()
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" (file: %s)", e.Path)
	}
	if e.Stderr != "" {
		stderr := e.Stderr
		if len(stderr) > maxStderr {
			stderr = truncateRunes(stderr, maxStderr) + "..."
		}
		msg += fmt.Sprintf("\nstderr: %s", stderr)
	}
	if e.Hint != "" {
		msg += fmt.Sprintf("\nhint: %s", e.Hint)
	}
	return msg
}

// truncateRunes cuts s to at most n bytes without splitting a rune.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func (e *ConversionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// FileNotFoundError reports a missing input file.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("input file not found: %s", e.Path)
}
