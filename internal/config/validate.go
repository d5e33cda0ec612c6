// internal/config/validate.go
package config

import (
	"fmt"
	"path/filepath"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validProgress = map[string]bool{
	"file": true, "slide": true, "": true,
}

var validHostKinds = map[string]bool{
	"native": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	if !validProgress[c.Merge.Progress] {
		errs = append(errs, fmt.Sprintf("merge.progress: must be file or slide; got %q", c.Merge.Progress))
	}
	if c.Merge.MinSources < 0 {
		errs = append(errs, fmt.Sprintf("merge.min_sources: must be at least 1, got %d", c.Merge.MinSources))
	}

	if !validHostKinds[c.Host.Kind] {
		errs = append(errs, fmt.Sprintf("host.kind: must be native; got %q", c.Host.Kind))
	}
	if len(c.Host.Viewer) > 0 && c.Host.Viewer[0] == "" {
		errs = append(errs, "host.viewer: command must not be empty")
	}

	if c.History.Enabled && c.History.Path != "" && filepath.Ext(c.History.Path) == "" {
		errs = append(errs, fmt.Sprintf("history.path: %q looks like a directory, want a database file", c.History.Path))
	}

	if c.Batch.Concurrency < 0 {
		errs = append(errs, fmt.Sprintf("batch.concurrency: must be at least 1, got %d", c.Batch.Concurrency))
	}

	return errs
}
