package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/autobrr/go-mpi/internal/config"
)

func TestLoadWithoutDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent")
	}
	if !strings.HasSuffix(resolved, filepath.Join("mpi", "config.toml")) {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if *cfg != config.Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadDefaultLocation(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	dir := filepath.Join(base, "mpi")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := "output = \"JSON\"\nlog_level = \"Debug\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, _, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Output != config.OutputJSON || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.LogFormat != "console" || cfg.Color != config.ColorAuto {
		t.Fatalf("defaults not kept: %+v", cfg)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	want := config.Config{Output: "table", LogLevel: "info", LogFormat: "json", Color: "never"}
	data, err := toml.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != path || !exists {
		t.Fatalf("resolved=%q exists=%v", resolved, exists)
	}
	if *cfg != want {
		t.Fatalf("got %+v want %+v", cfg, want)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	if _, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"output":      "output = \"xml\"\n",
		"color":       "color = \"sometimes\"\n",
		"unknown key": "colour = \"never\"\n",
		"syntax":      "output = \n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestOverride(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Override(config.Config{Output: "Table", LogLevel: "warning"}); err != nil {
		t.Fatalf("Override returned error: %v", err)
	}
	if cfg.Output != config.OutputTable || cfg.LogLevel != "warn" || cfg.Color != config.ColorAuto {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if err := cfg.Override(config.Config{LogFormat: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}
