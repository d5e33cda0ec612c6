package main

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"github.com/vmunix/slidemerge/internal/batch"
	"github.com/vmunix/slidemerge/internal/host"
	"github.com/vmunix/slidemerge/internal/merge"
)

var batchCmd = &cobra.Command{
	Use:   "batch <manifest.toml>",
	Short: "Run several merges from a manifest",
	Long: `Run every [[job]] of a TOML manifest:

  [[job]]
  name = "quarterly"          # optional, defaults to the output name
  output = "out/quarterly"
  sources = ["intro.pptx", "sales.pptx"]

Relative paths are taken from the manifest's directory. Jobs run
concurrently, each with its own host.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatchCmd,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntP("concurrency", "j", 0, "Jobs to run at once (default from config)")
	batchCmd.Flags().Bool("fail-fast", false, "Skip remaining jobs after the first failure")
	batchCmd.Flags().BoolP("verbose", "v", false, "Print progress")
}

func runBatchCmd(cmd *cobra.Command, args []string) error {
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	failFast, _ := cmd.Flags().GetBool("fail-fast")
	verbose, _ := cmd.Flags().GetBool("verbose")
	if concurrency == 0 {
		concurrency = cfg.Batch.Concurrency
	}
	granularity, err := merge.ParseGranularity(cfg.Merge.Progress)
	if err != nil {
		return err
	}

	manifest, err := batch.LoadManifest(args[0])
	if err != nil {
		return err
	}

	ctx, stop := interruptContext(cmd.Context())
	defer stop()

	bus, closeBus := newBus(cfg)
	defer closeBus()

	var progress batch.ProgressFunc
	if verbose {
		progress = jobProgressPrinter(cmd.ErrOrStderr())
	}

	runner := batch.NewRunner(func() host.Host { return newHost(cfg) }, bus, batch.Config{
		Concurrency: concurrency,
		FailFast:    failFast,
		Granularity: granularity,
	}, logger)
	results, err := runner.Run(ctx, manifest.Jobs, progress)
	printJobResults(cmd.OutOrStdout(), results)
	return err
}

// jobProgressPrinter serialises progress lines from concurrent jobs.
func jobProgressPrinter(w io.Writer) batch.ProgressFunc {
	var mu sync.Mutex
	return func(job, label string, current, total int) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "%s: [%d/%d] %s\n", job, current, total, label)
	}
}

func printJobResults(w io.Writer, results []batch.JobResult) {
	for _, r := range results {
		if r.Result.Success {
			fmt.Fprintf(w, "ok    %-20s %s (%s)\n", r.Job.Name, filepath.Base(r.Result.OutputPath), plural(r.Result.Slides, "slide"))
			continue
		}
		fmt.Fprintf(w, "FAIL  %-20s %s\n", r.Job.Name, merge.Describe(r.Result.Err))
	}
}
