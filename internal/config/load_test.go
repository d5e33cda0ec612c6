// internal/config/load_test.go
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "slidemerge.toml")
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath
}

func TestLoad_Valid(t *testing.T) {
	cfgPath := writeConfig(t, `
[log]
level = "debug"

[merge]
progress = "slide"
min_sources = 2

[host]
viewer = ["soffice", "--show", "{path}"]

[batch]
concurrency = 4
`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected level debug, got %s", cfg.Log.Level)
	}
	if cfg.Merge.Progress != "slide" || cfg.Merge.MinSources != 2 {
		t.Errorf("unexpected merge section %+v", cfg.Merge)
	}
	if len(cfg.Host.Viewer) != 3 || cfg.Host.Viewer[2] != "{path}" {
		t.Errorf("unexpected viewer %v", cfg.Host.Viewer)
	}
	if cfg.Batch.Concurrency != 4 {
		t.Errorf("expected concurrency 4, got %d", cfg.Batch.Concurrency)
	}
}

func TestLoad_MissingEnvVar(t *testing.T) {
	os.Unsetenv("SLIDEMERGE_MISSING_PATH")
	cfgPath := writeConfig(t, `
[history]
path = "${SLIDEMERGE_MISSING_PATH}"
`)

	_, err := Load(cfgPath)
	if err == nil {
		t.Fatal("expected error for missing env var")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if len(cfgErr.Missing) != 1 || cfgErr.Missing[0] != "SLIDEMERGE_MISSING_PATH" {
		t.Errorf("expected SLIDEMERGE_MISSING_PATH missing, got %v", cfgErr.Missing)
	}
}

func TestLoad_ValidationError(t *testing.T) {
	cfgPath := writeConfig(t, `
[merge]
progress = "page"
`)

	_, err := Load(cfgPath)
	if err == nil {
		t.Fatal("expected error for invalid progress")
	}
	if !strings.Contains(err.Error(), "merge.progress") {
		t.Errorf("expected merge.progress in error, got %v", err)
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	cfgPath := writeConfig(t, `
[merge]
progres = "slide"
`)

	_, err := Load(cfgPath)
	if err == nil {
		t.Fatal("expected error for misspelled key")
	}
	if !strings.Contains(err.Error(), "merge.progres") {
		t.Errorf("expected key name in error, got %v", err)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	cfgPath := writeConfig(t, "")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected default level warn, got %s", cfg.Log.Level)
	}
	if cfg.Merge.Progress != "file" || cfg.Merge.MinSources != 1 {
		t.Errorf("unexpected merge defaults %+v", cfg.Merge)
	}
	if cfg.Host.Kind != "native" {
		t.Errorf("expected native host, got %s", cfg.Host.Kind)
	}
	if !cfg.History.Enabled {
		t.Error("expected history enabled by default")
	}
	if cfg.History.Path != filepath.Join("/data", "slidemerge", "history.db") {
		t.Errorf("unexpected history path %s", cfg.History.Path)
	}
	if cfg.Batch.Concurrency != DefaultConcurrency {
		t.Errorf("expected concurrency %d, got %d", DefaultConcurrency, cfg.Batch.Concurrency)
	}
}

func TestLoad_HistoryDisabled(t *testing.T) {
	cfgPath := writeConfig(t, `
[history]
enabled = false
`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.History.Enabled {
		t.Error("expected history disabled")
	}
}

func TestLoadWithoutValidation(t *testing.T) {
	cfgPath := writeConfig(t, `
[batch]
concurrency = -3
`)

	cfg, err := LoadWithoutValidation(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Batch.Concurrency != -3 {
		t.Errorf("expected concurrency -3, got %d", cfg.Batch.Concurrency)
	}
}

func TestLoad_EnvVarDefault(t *testing.T) {
	os.Unsetenv("SLIDEMERGE_OPTIONAL_LEVEL")
	cfgPath := writeConfig(t, `
[log]
level = "${SLIDEMERGE_OPTIONAL_LEVEL:-warn}"
`)

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected level warn, got %s", cfg.Log.Level)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("default config invalid: %v", errs)
	}
	if !cfg.History.Enabled {
		t.Error("expected history enabled by default")
	}
}
