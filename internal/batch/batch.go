// Package batch fans a list of session files out to a bounded pool of
// analysis workers and collects one result per file. Results come back in
// input order, and a failure in one file never aborts the others.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/throwbench/internal/adapters/ingest"
	app "github.com/okian/throwbench/internal/app"
	"github.com/okian/throwbench/pkg/logger"
	"github.com/okian/throwbench/pkg/metrics"
)

// Loader reads one session file into throws.
type Loader interface {
	ReadFile(ctx context.Context, path string) (ingest.Session, error)
}

// Analyzer benchmarks one loaded session.
type Analyzer interface {
	Analyze(ctx context.Context, session ingest.Session) (*app.Report, error)
}

// Result is the outcome for a single input file. Exactly one of Report and
// Err is set.
type Result struct {
	Path   string
	Report *app.Report
	Err    error
}

// Runner drives the worker pool. Analysis is CPU-bound, so the default pool
// width is one worker per core rather than the oversubscription an I/O-bound
// pool would want.
type Runner struct {
	// Collaborators
	loader   Loader
	analyzer Analyzer

	// Configuration
	workers int

	// Logging
	logger logger.Logger
}

// NewRunner creates a batch runner over the given loader and analyzer.
func NewRunner(loader Loader, analyzer Analyzer, opts ...Option) *Runner {
	r := &Runner{
		loader:   loader,
		analyzer: analyzer,
		workers:  runtime.NumCPU(),
		logger:   logger.Get().Named("batch"),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run analyzes every path and returns one result per path, in input order.
// Cancellation marks the not-yet-started jobs as cancelled and lets running
// jobs surface their own context errors.
func (r *Runner) Run(ctx context.Context, paths []string) []Result {
	if len(paths) == 0 {
		return nil
	}

	workers := r.workers
	if workers > len(paths) {
		workers = len(paths)
	}
	metrics.UpdateBatchWorkers(workers)
	defer metrics.UpdateBatchWorkers(0)

	start := time.Now()
	r.logger.Info(ctx, "batch analysis started",
		logger.Int("files", len(paths)),
		logger.Int("workers", workers),
	)

	results := make([]Result, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.process(ctx, paths[i])
			}
		}()
	}

	for i := range paths {
		if err := ctx.Err(); err != nil {
			results[i] = Result{Path: paths[i], Err: fmt.Errorf("%w: %v", ErrJobCancelled, err)}
			metrics.RecordBatchJobError()
			continue
		}
		select {
		case <-ctx.Done():
			results[i] = Result{Path: paths[i], Err: fmt.Errorf("%w: %v", ErrJobCancelled, ctx.Err())}
			metrics.RecordBatchJobError()
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	r.logger.Info(ctx, "batch analysis finished",
		logger.Int("files", len(paths)),
		logger.Int("failed", failed),
		logger.Duration("took", time.Since(start)),
	)

	return results
}

// process runs the load-then-analyze pipeline for one file.
func (r *Runner) process(ctx context.Context, path string) Result {
	session, err := r.loader.ReadFile(ctx, path)
	if err != nil {
		metrics.RecordBatchJobError()
		r.logger.Warn(ctx, "session load failed",
			logger.String("path", path),
			logger.Error(err),
		)
		return Result{Path: path, Err: fmt.Errorf("load %s: %w", path, err)}
	}

	report, err := r.analyzer.Analyze(ctx, session)
	if err != nil {
		metrics.RecordBatchJobError()
		r.logger.Warn(ctx, "session analysis failed",
			logger.String("path", path),
			logger.Error(err),
		)
		return Result{Path: path, Err: fmt.Errorf("analyze %s: %w", path, err)}
	}

	return Result{Path: path, Report: report}
}
