// Package config loads the optional mpi configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds user preferences. Command line flags override every field.
type Config struct {
	Output    string `toml:"output"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	Color     string `toml:"color"`
}

const (
	OutputTOML  = "toml"
	OutputJSON  = "json"
	OutputTable = "table"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"

	defaultLogLevel  = "warn"
	defaultLogFormat = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Output:    OutputTOML,
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
		Color:     ColorAuto,
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/mpi/config.toml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultConfigPath() (string, error) {
	if base, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "mpi", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "mpi", "config.toml"), nil
}

// Load reads the config at path, or the default location when path is
// empty, over the defaults. It returns the resolved path and whether a file
// was read. A missing default file is not an error; a missing explicit one
// is.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolved)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		info, err := os.Stat(path)
		if err != nil {
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config %s is a directory", path)
		}
		return path, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(defaultPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return defaultPath, false, nil
	case err != nil:
		return "", false, fmt.Errorf("stat config: %w", err)
	case info.IsDir():
		return defaultPath, false, nil
	}
	return defaultPath, true, nil
}

func (c *Config) normalize() {
	c.Output = normalizeValue(c.Output, OutputTOML)
	c.LogLevel = normalizeValue(c.LogLevel, defaultLogLevel)
	if c.LogLevel == "warning" {
		c.LogLevel = "warn"
	}
	c.LogFormat = normalizeValue(c.LogFormat, defaultLogFormat)
	c.Color = normalizeValue(c.Color, ColorAuto)
}

func normalizeValue(value, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	return value
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := oneOf("output", c.Output, OutputTOML, OutputJSON, OutputTable); err != nil {
		return err
	}
	if err := oneOf("log_level", c.LogLevel, "debug", "info", "warn", "error"); err != nil {
		return err
	}
	if err := oneOf("log_format", c.LogFormat, "console", "json"); err != nil {
		return err
	}
	return oneOf("color", c.Color, ColorAuto, ColorAlways, ColorNever)
}

// Override applies non-empty values on top of c and revalidates.
func (c *Config) Override(o Config) error {
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		c.LogFormat = o.LogFormat
	}
	if o.Color != "" {
		c.Color = o.Color
	}
	c.normalize()
	return c.Validate()
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s: unsupported value %q (want one of %s)", key, value, strings.Join(allowed, ", "))
}
