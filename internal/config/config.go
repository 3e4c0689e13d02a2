// SPDX-License-Identifier: Apache-2.0

// Package config loads importer settings from an optional YAML file, a .env
// file and SONGIMPORT_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

const (
	DefaultMaxFiles     = 20
	DefaultMaxFileBytes = 1 << 20
	DefaultWorkers      = 4
)

// Config holds the limits the preview service enforces and how the CLI logs
// and prints.
type Config struct {
	Import ImportConfig `yaml:"import"`
	Log    LogConfig    `yaml:"log"`
	// Output is the CLI output encoding, "yaml" or "json".
	Output string `yaml:"output"`
}

type ImportConfig struct {
	MaxFiles     int `yaml:"max_files"`
	MaxFileBytes int `yaml:"max_file_bytes"`
	Workers      int `yaml:"workers"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Import: ImportConfig{
			MaxFiles:     DefaultMaxFiles,
			MaxFileBytes: DefaultMaxFileBytes,
			Workers:      DefaultWorkers,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Output: "yaml",
	}
}

// Load builds a Config from the defaults, the YAML file at path (skipped
// when path is empty), a .env file in the working directory if one exists,
// and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Import.MaxFiles = envInt("SONGIMPORT_MAX_FILES", c.Import.MaxFiles)
	c.Import.MaxFileBytes = envInt("SONGIMPORT_MAX_FILE_BYTES", c.Import.MaxFileBytes)
	c.Import.Workers = envInt("SONGIMPORT_WORKERS", c.Import.Workers)
	c.Log.Level = envString("SONGIMPORT_LOG_LEVEL", c.Log.Level)
	c.Log.Format = envString("SONGIMPORT_LOG_FORMAT", c.Log.Format)
	c.Output = envString("SONGIMPORT_OUTPUT", c.Output)
}

// Validate rejects settings the importer cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Import.MaxFiles <= 0 {
		errs = append(errs, fmt.Errorf("import.max_files must be positive, got %d", c.Import.MaxFiles))
	}
	if c.Import.MaxFileBytes <= 0 {
		errs = append(errs, fmt.Errorf("import.max_file_bytes must be positive, got %d", c.Import.MaxFileBytes))
	}
	if c.Import.Workers <= 0 {
		errs = append(errs, fmt.Errorf("import.workers must be positive, got %d", c.Import.Workers))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	switch strings.ToLower(c.Output) {
	case "yaml", "json":
	default:
		errs = append(errs, fmt.Errorf("output must be yaml or json, got %q", c.Output))
	}
	return errors.Join(errs...)
}

// envInt reads a positive integer, keeping fallback when the variable is
// unset or not a positive integer.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envString(name, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return fallback
}
