// Package batch runs several independent merges concurrently.
package batch

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/slidemerge/internal/events"
	"github.com/vmunix/slidemerge/internal/host"
	"github.com/vmunix/slidemerge/internal/merge"
)

// HostFactory returns a fresh host for one job. Jobs never share a host.
type HostFactory func() host.Host

// Config for a batch run.
type Config struct {
	// Concurrency bounds the jobs running at once. Values below 1 mean 1.
	Concurrency int
	// FailFast skips jobs not yet started once one has failed.
	FailFast bool
	// Granularity is passed to every merge along with the progress callback.
	Granularity merge.Granularity
}

// JobResult pairs a job with its merge outcome.
type JobResult struct {
	Job    Job
	Result merge.Result
}

// ProgressFunc receives per-job merge progress. It may be called from
// several goroutines at once.
type ProgressFunc func(job string, label string, current, total int)

// Runner runs manifest jobs.
type Runner struct {
	newHost HostFactory
	bus     *events.Bus
	config  Config
	logger  *slog.Logger
}

// NewRunner creates a new runner. The bus is optional.
func NewRunner(newHost HostFactory, bus *events.Bus, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Runner{
		newHost: newHost,
		bus:     bus,
		config:  cfg,
		logger:  logger.With("component", "batch"),
	}
}

// Run merges every job and returns their results in manifest order. It
// blocks until all started jobs are done. The error wraps ErrJobsFailed
// when any job failed or was skipped, or is ctx's error when the run was
// cancelled.
func (r *Runner) Run(ctx context.Context, jobs []Job, progress ProgressFunc) ([]JobResult, error) {
	results := make([]JobResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Concurrency)

	for i, job := range jobs {
		results[i].Job = job
		g.Go(func() error {
			log := r.logger.With("job", job.Name)
			if err := gctx.Err(); err != nil {
				log.Info("job skipped", "error", err)
				results[i].Result = merge.Result{Err: fmt.Errorf("skipped: %w", err)}
				return nil
			}

			req := merge.Request{
				Sources:     job.Sources,
				Output:      job.Output,
				Granularity: r.config.Granularity,
			}
			if progress != nil {
				req.Progress = func(label string, current, total int) {
					progress(job.Name, label, current, total)
				}
			}

			res := merge.NewOrchestrator(r.newHost(), r.bus, log).Merge(gctx, req)
			results[i].Result = res
			if !res.Success && r.config.FailFast {
				return fmt.Errorf("job %s: %w", job.Name, res.Err)
			}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, res := range results {
		if !res.Result.Success {
			failed++
		}
	}
	r.logger.Info("batch finished", "jobs", len(jobs), "failed", failed)

	if err := ctx.Err(); err != nil {
		return results, err
	}
	if failed > 0 {
		return results, fmt.Errorf("%w: %d of %d", ErrJobsFailed, failed, len(jobs))
	}
	return results, nil
}
