// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/pdiddy/omvandlare/pkg/types"
)

// Source tells where a Location came from.
type Source string

const (
	SourceConfig  Source = "config"
	SourceBundled Source = "bundled"
	SourceSystem  Source = "system"
	SourceNone    Source = "none"
)

// maxListedFiles caps the directory listing logged when the bundled engine
// is missing.
const maxListedFiles = 10

// Location is the outcome of engine discovery.
type Location struct {
	// Path is the engine binary, empty when nothing was found.
	Path string

	Source Source

	// BundleDir is the bundle directory that was inspected, if any.
	BundleDir string
}

// Found reports whether an engine binary was located.
func (l Location) Found() bool {
	return l.Path != ""
}

// Bundled reports whether the process runs from a packaged bundle.
func (l Location) Bundled() bool {
	return l.BundleDir != ""
}

// Locator resolves the engine binary from configuration, the bundle
// directory and the system PATH, in that order.
type Locator struct {
	fs     afero.Fs
	exec   executor
	goos   string
	logger *slog.Logger
}

// NewLocator returns a Locator backed by the OS filesystem and PATH.
func NewLocator(logger *slog.Logger) *Locator {
	return newLocator(afero.NewOsFs(), defaultExec, runtime.GOOS, logger)
}

func newLocator(fs afero.Fs, exec executor, goos string, logger *slog.Logger) *Locator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Locator{fs: fs, exec: exec, goos: goos, logger: logger}
}

// Locate runs discovery with the production Locator.
func Locate(cfg types.EngineConfig, logger *slog.Logger) Location {
	return NewLocator(logger).Locate(cfg)
}

// BinaryName returns the platform file name for an engine name.
func BinaryName(name, goos string) string {
	if name == "" {
		name = types.DefaultEngineName
	}
	if goos == "windows" && !strings.EqualFold(filepath.Ext(name), ".exe") {
		return name + ".exe"
	}
	return name
}

// Locate never fails. Missing candidates are logged and skipped.
func (l *Locator) Locate(cfg types.EngineConfig) Location {
	if cfg.Path != "" {
		if l.isFile(cfg.Path) {
			l.logger.Debug("using configured engine", "path", cfg.Path)
			return Location{Path: cfg.Path, Source: SourceConfig}
		}
		l.logger.Warn("configured engine not found, continuing discovery", "path", cfg.Path)
	}

	bin := BinaryName(cfg.Name, l.goos)
	loc := Location{Source: SourceNone}

	if dir := l.bundleDir(cfg); dir != "" {
		loc.BundleDir = dir
		candidate := filepath.Join(dir, bin)
		if l.isFile(candidate) {
			l.logger.Info("using bundled engine", "path", candidate)
			loc.Path = candidate
			loc.Source = SourceBundled
			return loc
		}
		l.logMissingBundled(dir, candidate, cfg.Name)
	} else {
		l.logger.Debug("not running from a bundle, using system engine")
	}

	if p, err := l.exec.LookPath(bin); err == nil {
		l.logger.Debug("using system engine", "path", p)
		loc.Path = p
		loc.Source = SourceSystem
		return loc
	}

	l.logger.Warn("conversion engine not found on PATH", "name", bin)
	return loc
}

func (l *Locator) bundleDir(cfg types.EngineConfig) string {
	if cfg.BundleDir != "" {
		return cfg.BundleDir
	}
	if !cfg.Portable {
		return ""
	}
	exe, err := l.exec.Executable()
	if err != nil {
		l.logger.Warn("cannot resolve executable directory", "error", err)
		return ""
	}
	return filepath.Dir(exe)
}

func (l *Locator) isFile(path string) bool {
	info, err := l.fs.Stat(path)
	return err == nil && !info.IsDir()
}

// logMissingBundled reports the bundle contents to help diagnose a broken
// portable build.
func (l *Locator) logMissingBundled(dir, candidate, name string) {
	l.logger.Warn("bundled engine not found", "path", candidate)

	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		l.logger.Warn("cannot list bundle directory", "dir", dir, "error", err)
		return
	}

	if name == "" {
		name = types.DefaultEngineName
	}
	var related, all []string
	for _, e := range entries {
		all = append(all, e.Name())
		if strings.Contains(strings.ToLower(e.Name()), strings.ToLower(name)) {
			related = append(related, e.Name())
		}
	}
	sort.Strings(related)

	if len(related) > 0 {
		l.logger.Warn("found engine-related files in bundle", "files", related)
		return
	}
	if len(all) > maxListedFiles {
		all = all[:maxListedFiles]
	}
	l.logger.Warn("no engine files in bundle", "dir", dir, "contents", all)
}
