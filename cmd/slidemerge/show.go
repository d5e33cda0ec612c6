package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/slidemerge/internal/slideshow"
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Play a presentation as a slideshow",
	Args:  cobra.ExactArgs(1),
	RunE:  runShowCmd,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShowCmd(cmd *cobra.Command, args []string) error {
	bus, closeBus := newBus(cfg)
	defer closeBus()

	res := slideshow.NewLauncher(newHost(cfg), bus, logger).Launch(cmd.Context(), args[0])
	if !res.Success {
		return res.Err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Playing %s\n", res.Path)
	return nil
}
