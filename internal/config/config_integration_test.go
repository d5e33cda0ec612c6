package config

import (
	"path/filepath"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	tmp := t.TempDir()

	// 1. Write default config
	cfgPath := filepath.Join(tmp, "slidemerge", "config.toml")
	if err := WriteDefault(cfgPath, false); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	// 2. Discover it through the override
	t.Setenv(EnvConfig, cfgPath)
	found, err := Discover()
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	// 3. Load and validate
	cfg, err := Load(found)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// 4. Written values match the defaults
	want := Default()
	if cfg.Merge != want.Merge {
		t.Errorf("expected merge %+v, got %+v", want.Merge, cfg.Merge)
	}
	if cfg.Batch.Concurrency != DefaultConcurrency {
		t.Errorf("expected concurrency %d, got %d", DefaultConcurrency, cfg.Batch.Concurrency)
	}
	if !cfg.History.Enabled {
		t.Error("expected history enabled")
	}
}
