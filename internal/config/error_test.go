// internal/config/error_test.go
package config

import (
	"strings"
	"testing"
)

func TestConfigError_Error_Empty(t *testing.T) {
	e := &ConfigError{Path: "/etc/slidemerge/config.toml"}
	got := e.Error()
	if got != "" {
		t.Errorf("expected empty string for no errors, got %q", got)
	}
	if e.HasErrors() {
		t.Error("expected HasErrors false")
	}
}

func TestConfigError_Error_MissingVars(t *testing.T) {
	e := &ConfigError{
		Path:    "/etc/slidemerge/config.toml",
		Missing: []string{"SLIDEMERGE_HISTORY", "VIEWER"},
	}
	got := e.Error()
	if !strings.HasPrefix(got, "config /etc/slidemerge/config.toml:") {
		t.Errorf("expected path prefix, got %q", got)
	}
	if !strings.Contains(got, "missing environment variables") {
		t.Errorf("expected 'missing environment variables', got %q", got)
	}
	if !strings.Contains(got, "SLIDEMERGE_HISTORY") || !strings.Contains(got, "VIEWER") {
		t.Errorf("expected var names in error, got %q", got)
	}
}

func TestConfigError_Error_ValidationErrors(t *testing.T) {
	e := &ConfigError{
		Errors: []string{"merge.progress: must be file or slide", "host.kind: must be native"},
	}
	got := e.Error()
	if !strings.HasPrefix(got, "validation failed") {
		t.Errorf("expected no path prefix without a path, got %q", got)
	}
	if !strings.Contains(got, "  - host.kind") {
		t.Errorf("expected indented field name in error, got %q", got)
	}
}

func TestConfigError_Error_Both(t *testing.T) {
	e := &ConfigError{
		Path:    "slidemerge.toml",
		Missing: []string{"SLIDEMERGE_HISTORY"},
		Errors:  []string{"batch.concurrency: invalid"},
	}
	got := e.Error()
	if !strings.Contains(got, "missing environment variables") {
		t.Errorf("expected missing vars section, got %q", got)
	}
	if !strings.Contains(got, "validation failed") {
		t.Errorf("expected validation section, got %q", got)
	}
	if !e.HasErrors() {
		t.Error("expected HasErrors true")
	}
}
