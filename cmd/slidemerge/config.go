package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/slidemerge/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates config syntax, values, and environment variable substitution.",
	Args:  cobra.MaximumNArgs(1),
	// Runs without the root's config loading so a broken file can be reported.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE:              runConfigTest,
}

var configPathCmd = &cobra.Command{
	Use:               "path",
	Short:             "Print the config file in use",
	Args:              cobra.NoArgs,
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Discover()
		if errors.Is(err, config.ErrNotFound) {
			fmt.Fprintf(cmd.OutOrStdout(), "none (defaults apply); create one at %s\n", config.DefaultPath())
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			return err
		}
		path = found
	}

	return checkConfig(cmd.OutOrStdout(), path)
}

// checkConfig reports parse problems and validation problems separately.
func checkConfig(out io.Writer, path string) error {
	fmt.Fprintf(out, "Validating %s...\n\n", path)

	cfg, err := config.LoadWithoutValidation(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(out, configErr)
			return errors.New("configuration invalid")
		}
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load config: %w", err)
		}
		fmt.Fprintf(out, "Syntax error:\n  %v\n\n", err)
		return errors.New("configuration unreadable")
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		printConfigErrors(out, &config.ConfigError{Path: path, Errors: errs})
		return errors.New("configuration invalid")
	}

	printConfigSummary(out, cfg)
	fmt.Fprintln(out, "\nConfiguration valid!")
	return nil
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Configuration Summary:")
	fmt.Fprintf(w, "  Log level:  %s\n", cfg.Log.Level)
	fmt.Fprintf(w, "  Progress:   per %s (min %s)\n", cfg.Merge.Progress, plural(cfg.Merge.MinSources, "source"))

	viewer := "platform default"
	if len(cfg.Host.Viewer) > 0 {
		viewer = strings.Join(cfg.Host.Viewer, " ")
	}
	fmt.Fprintf(w, "  Host:       %s (viewer: %s)\n", cfg.Host.Kind, viewer)

	if cfg.History.Enabled {
		fmt.Fprintf(w, "  History:    %s\n", cfg.History.Path)
	} else {
		fmt.Fprintln(w, "  History:    disabled")
	}
	fmt.Fprintf(w, "  Batch:      %d at once\n", cfg.Batch.Concurrency)
}
