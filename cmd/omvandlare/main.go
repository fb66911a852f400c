// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the omvandlare CLI. Without a
// subcommand it opens the interactive shell; the subcommands expose the
// same export workflow and engine diagnostics for scripts.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/omvandlare/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const appName = "omvandlare"

// rootCmd is the base command for the omvandlare CLI.
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Paste Markdown, export a Word document",
	Long: `omvandlare turns pasted Markdown (for example the output of a chat
assistant) into a Word document using pandoc.

Run without arguments to open the interactive shell: paste text, press
ctrl+s to export and the document opens in its default application. The
subcommands provide the same conversion for scripts and a self-check of
the pandoc installation.`,
	SilenceUsage: true,
	RunE:         runShell,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: omvandlare.yaml in ., ~/.config/omvandlare or the executable's directory)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded into the environment before reading config")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("pandoc", "", "path to the pandoc binary")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("engine.path", rootCmd.PersistentFlags().Lookup("pandoc"))
}

func initConfig() {
	envFile, _ := rootCmd.PersistentFlags().GetString("env-file")
	if err := loadEnvFile(envFile); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	configureViper(viper.GetViper(), cfgFile)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadEnvFile loads KEY=VALUE pairs from path without overriding variables
// that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// configureViper sets the config search path, environment binding and
// defaults on v.
func configureViper(v *viper.Viper, cfgFile string) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
		// Portable bundles ship their config next to the binary.
		if exe, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(exe))
		}
	}

	v.SetEnvPrefix("OMVANDLARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := types.DefaultConfig()
	v.SetDefault("engine.path", d.Engine.Path)
	v.SetDefault("engine.name", d.Engine.Name)
	v.SetDefault("engine.bundle_dir", d.Engine.BundleDir)
	v.SetDefault("engine.portable", d.Engine.Portable)
	v.SetDefault("engine.timeout", d.Engine.Timeout)
	v.SetDefault("export.output_dir", d.Export.OutputDir)
	v.SetDefault("export.from", d.Export.From)
	v.SetDefault("export.to", d.Export.To)
	v.SetDefault("export.open", d.Export.Open)
	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.data_dir", d.History.DataDir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// loadConfig decodes v into a Config and fills derived defaults.
func loadConfig(v *viper.Viper) (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Engine.Name == "" {
		cfg.Engine.Name = types.DefaultEngineName
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = types.DefaultLogLevel
	}
	if cfg.History.DataDir == "" {
		cfg.History.DataDir = defaultDataDir()
	}
	return cfg, nil
}

// defaultDataDir returns the per-user data directory for history and logs.
func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	switch runtime.GOOS {
	case "windows", "darwin":
		if dir, err := os.UserConfigDir(); err == nil {
			return filepath.Join(dir, appName)
		}
	default:
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".local", "share", appName)
		}
	}
	return filepath.Join(os.TempDir(), appName)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
