// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Runner executes the located engine binary. Each call starts one process;
// nothing is kept alive between calls.
type Runner struct {
	loc     Location
	exec    executor
	timeout time.Duration
}

// NewRunner returns a Runner for loc. A zero timeout means calls are bounded
// only by the caller's context.
func NewRunner(loc Location, timeout time.Duration) *Runner {
	return newRunner(loc, timeout, defaultExec)
}

func newRunner(loc Location, timeout time.Duration, exec executor) *Runner {
	return &Runner{loc: loc, exec: exec, timeout: timeout}
}

// Location returns where the engine was found.
func (r *Runner) Location() Location { return r.loc }

// Run starts the engine with args, piping stdin in and the engine's standard
// output and diagnostic streams to the given writers. It returns ErrNotFound
// when no binary is available.
func (r *Runner) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if !r.loc.Found() {
		return ErrNotFound
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	if err := r.exec.Run(ctx, r.loc.Path, args, stdin, stdout, stderr); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("running %s: %w", r.loc.Path, ctxErr)
		}
		return wrapRunError(r.loc.Path, err)
	}
	return nil
}

// Version returns the first line of the engine's --version output,
// e.g. "pandoc 3.1.11".
func (r *Runner) Version(ctx context.Context) (string, error) {
	var out, errOut bytes.Buffer
	if err := r.Run(ctx, []string{"--version"}, nil, &out, &errOut); err != nil {
		return "", fmt.Errorf("querying engine version: %w", err)
	}
	first, _, _ := strings.Cut(out.String(), "\n")
	first = strings.TrimSpace(first)
	if first == "" {
		return "", fmt.Errorf("engine %s printed no version", r.loc.Path)
	}
	return first, nil
}
