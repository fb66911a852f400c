// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/omvandlare/internal/convert"
	"github.com/pdiddy/omvandlare/internal/engine"
	"github.com/pdiddy/omvandlare/pkg/types"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	v := viper.New()
	configureViper(v, "")

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "pandoc", cfg.Engine.Name)
	assert.Equal(t, "markdown", cfg.Export.From)
	assert.Equal(t, "docx", cfg.Export.To)
	assert.True(t, cfg.Export.Open)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, filepath.Join("/data", "omvandlare"), cfg.History.DataDir)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("OMVANDLARE_EXPORT_TO", "odt")
	t.Setenv("OMVANDLARE_EXPORT_OPEN", "false")
	t.Setenv("OMVANDLARE_ENGINE_TIMEOUT", "30s")
	t.Setenv("OMVANDLARE_ENGINE_BUNDLE_DIR", "/opt/omvandlare")
	t.Setenv("OMVANDLARE_HISTORY_DATA_DIR", "/var/lib/omvandlare")

	v := viper.New()
	configureViper(v, "")
	cfg, err := loadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "odt", cfg.Export.To)
	assert.False(t, cfg.Export.Open)
	assert.Equal(t, 30*time.Second, cfg.Engine.Timeout)
	assert.Equal(t, "/opt/omvandlare", cfg.Engine.BundleDir)
	assert.Equal(t, "/var/lib/omvandlare", cfg.History.DataDir)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "omvandlare.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`engine:
  path: /usr/local/bin/pandoc
  portable: true
export:
  output_dir: /home/eric/Documents
history:
  enabled: false
log:
  level: debug
  format: json
`), 0o644))

	v := viper.New()
	configureViper(v, path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/pandoc", cfg.Engine.Path)
	assert.True(t, cfg.Engine.Portable)
	assert.Equal(t, "pandoc", cfg.Engine.Name)
	assert.Equal(t, "/home/eric/Documents", cfg.Export.OutputDir)
	assert.Equal(t, "docx", cfg.Export.To)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OMVANDLARE_TEST_ENV_FILE=loaded\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("OMVANDLARE_TEST_ENV_FILE") })

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "loaded", os.Getenv("OMVANDLARE_TEST_ENV_FILE"))

	assert.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
	assert.NoError(t, loadEnvFile(""))
}

func TestWriteConfigRoundTrip(t *testing.T) {
	cfg := types.DefaultConfig()
	cfg.Engine.Timeout = 2 * time.Minute
	cfg.Export.OutputDir = "/out"

	var stdout bytes.Buffer
	require.NoError(t, writeConfig(&stdout, "-", cfg))
	assert.Contains(t, stdout.String(), "timeout: 2m0s")

	path := filepath.Join(t.TempDir(), "omvandlare.yaml")
	stdout.Reset()
	require.NoError(t, writeConfig(&stdout, path, cfg))
	assert.Contains(t, stdout.String(), path)

	v := viper.New()
	configureViper(v, path)
	require.NoError(t, v.ReadInConfig())
	got, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, cfg.Engine.Timeout, got.Engine.Timeout)
	assert.Equal(t, "/out", got.Export.OutputDir)

	var decoded types.Config
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "docx", decoded.Export.To)
}

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(file, []byte("# From file"), 0o644))

	clip := func() (string, error) { return "# From clipboard", nil }
	noClip := func() (string, error) { return "", errors.New("no xclip") }

	tests := []struct {
		name    string
		args    []string
		useClip bool
		read    func() (string, error)
		want    string
		wantErr string
	}{
		{name: "file", args: []string{file}, read: noClip, want: "# From file"},
		{name: "stdin", read: noClip, want: "# From stdin"},
		{name: "dash reads stdin", args: []string{"-"}, read: noClip, want: "# From stdin"},
		{name: "clipboard", useClip: true, read: clip, want: "# From clipboard"},
		{name: "clipboard failure", useClip: true, read: noClip, wantErr: "no xclip"},
		{name: "clipboard and file", args: []string{file}, useClip: true, read: clip, wantErr: "mutually exclusive"},
		{name: "missing file", args: []string{filepath.Join(dir, "nope.md")}, read: noClip, wantErr: "nope.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readSource(tt.args, tt.useClip, strings.NewReader("# From stdin"), tt.read)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// fakeProbe stands in for the pandoc converter in doctor output tests.
type fakeProbe struct {
	convertErr error
}

func (f *fakeProbe) Convert(_ context.Context, req convert.Request) (convert.Result, error) {
	if f.convertErr != nil {
		return convert.Result{}, f.convertErr
	}
	return convert.Result{Output: []byte("<h1 id=\"hello-world\">Hello World</h1>\n")}, nil
}

func (f *fakeProbe) Version(context.Context) (string, error) { return "pandoc 3.1.11", nil }

func (f *fakeProbe) Formats(context.Context) (convert.Formats, error) {
	return convert.Formats{Input: []string{"html", "markdown"}, Output: []string{"docx", "html", "odt"}}, nil
}

func TestDiagnose(t *testing.T) {
	loc := engine.Location{Path: "/opt/omvandlare/pandoc", Source: engine.SourceBundled, BundleDir: "/opt/omvandlare"}

	t.Run("working engine", func(t *testing.T) {
		var out bytes.Buffer
		ok := diagnose(context.Background(), &out, loc, &fakeProbe{})
		assert.True(t, ok)
		s := out.String()
		assert.Contains(t, s, "/opt/omvandlare/pandoc (bundled)")
		assert.Contains(t, s, "pandoc 3.1.11")
		assert.Contains(t, s, "input formats:  2")
		assert.Contains(t, s, "output formats: 3")
		assert.Contains(t, s, "Hello World</h1>")
	})

	t.Run("failing conversion", func(t *testing.T) {
		var out bytes.Buffer
		ok := diagnose(context.Background(), &out, loc, &fakeProbe{convertErr: errors.New("exit status 1")})
		assert.False(t, ok)
		assert.Contains(t, out.String(), "sample conversion failed")
	})

	t.Run("missing engine", func(t *testing.T) {
		var out bytes.Buffer
		ok := diagnose(context.Background(), &out, engine.Location{Source: engine.SourceNone, BundleDir: "/opt/omvandlare"}, &fakeProbe{})
		assert.False(t, ok)
		assert.Contains(t, out.String(), "pandoc not found")
		assert.Contains(t, out.String(), "bundle directory: /opt/omvandlare")
	})
}

func TestPrintFormats(t *testing.T) {
	f := convert.Formats{Input: []string{"markdown"}, Output: []string{"docx", "html"}}

	var text bytes.Buffer
	require.NoError(t, printFormats(&text, f, false))
	assert.Contains(t, text.String(), "Output formats (2):\n  docx html")

	var js bytes.Buffer
	require.NoError(t, printFormats(&js, f, true))
	assert.Contains(t, js.String(), `"output": [`)
}

func TestPrintHistory(t *testing.T) {
	var empty bytes.Buffer
	printHistory(&empty, nil)
	assert.Equal(t, "No exports yet.\n", empty.String())

	var out bytes.Buffer
	printHistory(&out, []types.ExportRecord{{
		Path:      "/docs/converted_document_20260314_150926.docx",
		To:        "docx",
		Bytes:     10240,
		Warnings:  1,
		CreatedAt: time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
	}})
	assert.Contains(t, out.String(), "converted_document_20260314_150926.docx")
	assert.Contains(t, out.String(), "10240")
	assert.Contains(t, out.String(), "1 exports")
}
