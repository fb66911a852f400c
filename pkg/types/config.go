// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the configuration and record types shared by the
// omvandlare packages.
package types

import "time"

// EngineConfig controls how the external conversion engine is found and run.
type EngineConfig struct {
	// Path is an explicit engine binary. When set and present it wins over
	// bundle and PATH discovery.
	Path string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`

	// Name is the engine binary name without extension (default "pandoc").
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// BundleDir is the directory a portable distribution unpacks its
	// resources into. Setting it marks the process as bundled.
	BundleDir string `json:"bundle_dir,omitempty" yaml:"bundle_dir,omitempty" mapstructure:"bundle_dir"`

	// Portable treats the directory of the running executable as the bundle
	// directory when BundleDir is empty.
	Portable bool `json:"portable" yaml:"portable" mapstructure:"portable"`

	// Timeout bounds a single engine invocation. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// ExportConfig holds defaults for the export workflow.
type ExportConfig struct {
	// OutputDir is where default filenames are placed (default: current dir).
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty" mapstructure:"output_dir"`

	// From is the source markup format handed to the engine (default "markdown").
	From string `json:"from" yaml:"from" mapstructure:"from"`

	// To is the target document format (default "docx").
	To string `json:"to" yaml:"to" mapstructure:"to"`

	// Open launches the OS default handler on the exported file.
	Open bool `json:"open" yaml:"open" mapstructure:"open"`
}

// HistoryConfig controls the export history database.
type HistoryConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// DataDir holds history.db and the TUI log file
	// (default ~/.local/share/omvandlare or the OS equivalent).
	DataDir string `json:"data_dir,omitempty" yaml:"data_dir,omitempty" mapstructure:"data_dir"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is text or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings of the application.
type Config struct {
	Engine  EngineConfig  `json:"engine" yaml:"engine" mapstructure:"engine"`
	Export  ExportConfig  `json:"export" yaml:"export" mapstructure:"export"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}

// Default values shared by the CLI flags and the config loader.
const (
	DefaultEngineName = "pandoc"
	DefaultFromFormat = "markdown"
	DefaultToFormat   = "docx"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// DefaultConfig returns the configuration used when no file or environment
// overrides are present.
func DefaultConfig() Config {
	return Config{
		Engine: EngineConfig{
			Name: DefaultEngineName,
		},
		Export: ExportConfig{
			From: DefaultFromFormat,
			To:   DefaultToFormat,
			Open: true,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
