// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the slog logger used across the application on top
// of a zerolog sink.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	slogzerolog "github.com/samber/slog-zerolog"
	"golang.org/x/term"

	"github.com/pdiddy/omvandlare/pkg/types"
)

// LogFile is the log file name used when logs cannot go to the terminal.
const LogFile = "omvandlare.log"

// ParseLevel maps a level name to a slog level. Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger writing to w. Format "json" emits one JSON object per
// line; anything else uses zerolog's console writer.
func New(cfg types.LogConfig, w io.Writer) *slog.Logger {
	var zl zerolog.Logger
	if strings.EqualFold(cfg.Format, "json") {
		zl = zerolog.New(w)
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: !isTerminal(w)})
	}

	handler := slogzerolog.Option{
		Level:  ParseLevel(cfg.Level),
		Logger: &zl,
	}.NewZerologHandler()
	return slog.New(handler)
}

// OpenFile opens dir/omvandlare.log for appending and returns a logger
// writing JSON lines to it. The caller closes the returned file.
func OpenFile(cfg types.LogConfig, dir string) (*slog.Logger, *os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, LogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	cfg.Format = "json"
	return New(cfg, f), f, nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
