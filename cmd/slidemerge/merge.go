package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vmunix/slidemerge/internal/events"
	"github.com/vmunix/slidemerge/internal/merge"
	"github.com/vmunix/slidemerge/internal/queue"
	"github.com/vmunix/slidemerge/internal/slideshow"
)

var mergeCmd = &cobra.Command{
	Use:   "merge -o <output> <file>...",
	Short: "Merge presentations in the order given",
	Long: `Merge presentations into a new one, in the order given.

Files that do not exist, are not presentations, or repeat an earlier
file are skipped with a warning. The output name gets a .pptx
extension when it has no presentation extension; use .ppsx to save
a slideshow.`,
	Example: `  slidemerge merge -o quarterly intro.pptx sales.pptx outro.pptx
  slidemerge merge -o kiosk.ppsx --show --progress slide a.pptx b.pptx
  slidemerge merge -o ~/Desktop/all --reveal *.pptx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMergeCmd,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().StringP("output", "o", "", "Output file (required)")
	mergeCmd.Flags().Bool("show", false, "Start a slideshow of the result")
	mergeCmd.Flags().Bool("reveal", false, "Open the output folder when done")
	mergeCmd.Flags().String("progress", "", "Progress per file or slide (default from config)")
	_ = mergeCmd.MarkFlagRequired("output")
}

func runMergeCmd(cmd *cobra.Command, args []string) error {
	outputName, _ := cmd.Flags().GetString("output")
	show, _ := cmd.Flags().GetBool("show")
	reveal, _ := cmd.Flags().GetBool("reveal")
	progressFlag, _ := cmd.Flags().GetString("progress")

	if progressFlag == "" {
		progressFlag = cfg.Merge.Progress
	}
	granularity, err := merge.ParseGranularity(progressFlag)
	if err != nil {
		return err
	}

	sources, err := collectSources(cmd.ErrOrStderr(), args, cfg.Merge.MinSources)
	if err != nil {
		return err
	}
	output, err := merge.ResolveOutputPath(outputName)
	if err != nil {
		return err
	}

	ctx, stop := interruptContext(cmd.Context())
	defer stop()

	bus, closeBus := newBus(cfg)
	defer closeBus()

	merged := bus.Subscribe(events.EventFileMerged, len(sources))

	h := newHost(cfg)
	res := merge.NewOrchestrator(h, bus, logger).Merge(ctx, merge.Request{
		Sources:     sources,
		Output:      output,
		Progress:    progressPrinter(cmd.ErrOrStderr()),
		Granularity: granularity,
	})
	bus.Unsubscribe(merged)
	if !res.Success {
		return errors.New(merge.Describe(res.Err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Merged %s (%s) into %s\n",
		plural(res.Files, "file"), plural(res.Slides, "slide"), res.OutputPath)
	printFileSummary(cmd.OutOrStdout(), merged)

	if show {
		launch := slideshow.NewLauncher(h, bus, logger).Launch(ctx, res.OutputPath)
		if !launch.Success {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", launch.Err)
		}
	}
	if reveal {
		if err := revealFolder(res.OutputPath); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
	}
	return nil
}

// collectSources queues args in order, reports every rejected path on w
// with a near-miss suggestion for missing files, and enforces the minimum
// number of files.
func collectSources(w io.Writer, args []string, minSources int) ([]string, error) {
	q := queue.New()
	for _, r := range q.Add(args...) {
		if r.Reason == queue.RejectMissing {
			if guess := queue.Suggest(r.Path); guess != "" {
				fmt.Fprintf(w, "skipping %s: %s (did you mean %s?)\n", r.Path, r.Reason, guess)
				continue
			}
		}
		fmt.Fprintf(w, "skipping %s: %s\n", r.Path, r.Reason)
	}
	if minSources < 1 {
		minSources = 1
	}
	if q.Len() < minSources {
		return nil, fmt.Errorf("need at least %s to merge, have %d", plural(minSources, "presentation"), q.Len())
	}
	return q.Snapshot(), nil
}

// printFileSummary lists each merged file from the buffered events on a
// closed subscription.
func printFileSummary(w io.Writer, merged <-chan events.Event) {
	for e := range merged {
		if f, ok := e.(*events.FileMerged); ok {
			fmt.Fprintf(w, "  %-24s %s\n", filepath.Base(f.Path), plural(f.Slides, "slide"))
		}
	}
}

// progressPrinter writes one line per progress step.
func progressPrinter(w io.Writer) merge.ProgressFunc {
	return func(label string, current, total int) {
		width := len(fmt.Sprint(total))
		fmt.Fprintf(w, "[%*d/%d] %s\n", width, current, total, label)
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
