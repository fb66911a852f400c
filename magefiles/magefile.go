//go:build mage

// Package main contains Mage build targets for omvandlare developer tooling.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir     = "bin"
	binName    = "omvandlare"
	cmdPkg     = "./cmd/omvandlare"
	bundleDir  = "dist/omvandlare"
	engineName = "pandoc"
)

// exe adds the platform executable suffix.
func exe(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

// ldflags stamps the version from git, falling back to "dev".
func ldflags() string {
	v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || strings.TrimSpace(v) == "" {
		v = "dev"
	}
	return "-s -w -X main.version=" + strings.TrimSpace(v)
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, exe(binName))
	if err := sh.RunV("go", "build", "-ldflags", ldflags(), "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Bundle builds a portable directory in dist/: the binary, the pandoc found
// on PATH (or in $PANDOC) next to it, and a config that turns on portable
// discovery.
func Bundle() error {
	mg.Deps(Build)

	if err := os.MkdirAll(bundleDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", bundleDir, err)
	}

	bin := exe(binName)
	if err := sh.Copy(filepath.Join(bundleDir, bin), filepath.Join(binDir, bin)); err != nil {
		return fmt.Errorf("copying binary: %w", err)
	}
	if err := os.Chmod(filepath.Join(bundleDir, bin), 0o755); err != nil {
		return err
	}

	src := os.Getenv("PANDOC")
	if src == "" {
		p, err := exec.LookPath(exe(engineName))
		if err != nil {
			return fmt.Errorf("pandoc not found on PATH; set PANDOC to the binary to bundle")
		}
		src = p
	}
	if resolved, err := filepath.EvalSymlinks(src); err == nil {
		src = resolved
	}
	dst := filepath.Join(bundleDir, exe(engineName))
	if err := sh.Copy(dst, src); err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if err := os.Chmod(dst, 0o755); err != nil {
		return err
	}

	cfg := "engine:\n  portable: true\n"
	if err := os.WriteFile(filepath.Join(bundleDir, "omvandlare.yaml"), []byte(cfg), 0o644); err != nil {
		return fmt.Errorf("writing bundle config: %w", err)
	}
	fmt.Printf("Bundled %s with %s\n", bundleDir, src)
	return nil
}

// Test runs the unit tests. Integration tests skip when pandoc is missing.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Clean removes build outputs.
func Clean() error {
	for _, dir := range []string{binDir, "dist"} {
		if err := sh.Rm(dir); err != nil {
			return err
		}
	}
	return nil
}

// Stats prints project metrics: Go production/test LOC and documentation word count.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}
	docWords, err := countDocWords(".")
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Words (documentation):           %d\n", docWords)
	return nil
}

// countGoLines walks the directory tree and counts non-blank lines in Go files.
// If testOnly is true, count only _test.go files; otherwise count non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return skipDir(root, path, d)
		}
		if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				total++
			}
		}
		return nil
	})
	return total, err
}

// countDocWords walks root and counts words in .md and .yaml files.
func countDocWords(root string) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return skipDir(root, path, d)
		}
		switch filepath.Ext(path) {
		case ".md", ".yaml", ".yml":
		default:
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		total += len(strings.Fields(string(data)))
		return nil
	})
	return total, err
}

// skipDir skips hidden and underscore-prefixed directories below root, the
// same ones the go tool ignores.
func skipDir(root, path string, d fs.DirEntry) error {
	if path == root {
		return nil
	}
	if name := d.Name(); strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return filepath.SkipDir
	}
	return nil
}
