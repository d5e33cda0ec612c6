// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Merge   MergeConfig   `toml:"merge"`
	Host    HostConfig    `toml:"host"`
	History HistoryConfig `toml:"history"`
	Batch   BatchConfig   `toml:"batch"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type MergeConfig struct {
	// Progress is "file" or "slide".
	Progress string `toml:"progress"`
	// MinSources is the fewest files the CLI accepts for a merge.
	MinSources int `toml:"min_sources"`
}

type HostConfig struct {
	Kind string `toml:"kind"`
	// Viewer is the slideshow command; "{path}" is replaced with the file.
	// Empty selects a per-platform default.
	Viewer []string `toml:"viewer,omitempty"`
}

type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

type BatchConfig struct {
	Concurrency int `toml:"concurrency"`
}

// Default values.
const (
	DefaultLogLevel    = "warn"
	DefaultProgress    = "file"
	DefaultMinSources  = 1
	DefaultHostKind    = "native"
	DefaultConcurrency = 2
)

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{History: HistoryConfig{Enabled: true}}
	cfg.applyDefaults()
	return cfg
}

// Load reads, parses, and validates the configuration file.
// Returns ConfigError if env vars are missing or validation fails.
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file without
// validating values. Missing environment variables are still an error.
func LoadWithoutValidation(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	var cfg Config
	md, err := toml.Decode(content, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, &ConfigError{Path: path, Errors: []string{"unknown keys: " + strings.Join(keys, ", ")}}
	}

	// History is on unless switched off explicitly.
	if !md.IsDefined("history", "enabled") {
		cfg.History.Enabled = true
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Merge.Progress == "" {
		c.Merge.Progress = DefaultProgress
	}
	if c.Merge.MinSources == 0 {
		c.Merge.MinSources = DefaultMinSources
	}
	if c.Host.Kind == "" {
		c.Host.Kind = DefaultHostKind
	}
	if c.History.Path == "" {
		c.History.Path = DefaultHistoryPath()
	}
	if c.Batch.Concurrency == 0 {
		c.Batch.Concurrency = DefaultConcurrency
	}
}

// DefaultHistoryPath returns the XDG-compliant history database path.
func DefaultHistoryPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./slidemerge.db"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "slidemerge", "history.db")
}

// envVarPattern matches ${VAR}, ${VAR:-default}, and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars expands environment references and returns the
// references it could not resolve. Unresolved references are left as is.
// Comments are copied through untouched.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	lines := strings.SplitAfter(content, "\n")
	for i, line := range lines {
		code, comment := splitComment(line)
		code = envVarPattern.ReplaceAllStringFunc(code, func(match string) string {
			m := envVarPattern.FindStringSubmatch(match)
			name, op, arg := m[1], m[2], m[3]
			value, ok := os.LookupEnv(name)

			switch op {
			case ":-":
				if !ok || value == "" {
					return arg
				}
				return value
			case ":?":
				if !ok || value == "" {
					missing = append(missing, fmt.Sprintf("%s: %s", name, arg))
					return match
				}
				return value
			default:
				if !ok {
					missing = append(missing, name)
					return match
				}
				return value
			}
		})
		lines[i] = code + comment
	}
	return strings.Join(lines, ""), missing
}

// splitComment splits a line at the first # outside a quoted string.
func splitComment(line string) (code, comment string) {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' && quote == '"' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			return line[:i], line[i:]
		}
	}
	return line, ""
}
