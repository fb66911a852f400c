// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine locates the external conversion engine and runs it.
//
// Discovery happens once at startup and never fails: a missing bundled
// binary only narrows the search down to the system PATH, and a missing
// system binary yields a Location whose Found reports false. The resolved
// path is passed explicitly to the Runner; no process-wide state is touched.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrNotFound is returned by Runner when no engine binary was located or the
// located binary disappeared before it could be started.
var ErrNotFound = errors.New("conversion engine not found")

// executor abstracts process execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Executable() (string, error)
	Run(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Executable() (string, error) {
	p, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(p)
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec executor = &osExecutor{}

// isMissingBinary reports whether err means the binary itself could not be
// started, as opposed to the binary exiting with a failure.
func isMissingBinary(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

func wrapRunError(path string, err error) error {
	if isMissingBinary(err) {
		return fmt.Errorf("%w: %s: %v", ErrNotFound, path, err)
	}
	return err
}
