// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package opener hands a file to the operating system's default handler.
package opener

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// starter abstracts command execution for testing.
type starter interface {
	Run(ctx context.Context, name string, args ...string) error
}

type osStarter struct{}

func (osStarter) Run(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil && len(out) > 0 {
		return fmt.Errorf("%w: %s", err, out)
	}
	return err
}

// Opener opens files with the desktop's default application.
type Opener struct {
	goos string
	run  starter
}

// New returns an Opener for the running OS.
func New() *Opener {
	return &Opener{goos: runtime.GOOS, run: osStarter{}}
}

// Command returns the program and arguments used to open path.
func (o *Opener) Command(path string) (string, []string) {
	switch o.goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	case "darwin":
		return "open", []string{path}
	default:
		return "xdg-open", []string{path}
	}
}

// Open launches the default handler for path and waits for the dispatcher
// to return.
func (o *Opener) Open(ctx context.Context, path string) error {
	name, args := o.Command(path)
	if err := o.run.Run(ctx, name, args...); err != nil {
		return fmt.Errorf("opening %s with %s: %w", path, name, err)
	}
	return nil
}
