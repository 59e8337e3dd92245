package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/platescan/platescan/internal/model"
	"golang.org/x/sync/errgroup"
)

// BatchRunner audits multiple URLs concurrently with a bounded number
// of in-flight audits. Used by the CLI; the HTTP server relies on the
// request concurrency net/http already provides.
type BatchRunner struct {
	// pipelineFactory creates a fresh pipeline per audit so no state
	// leaks between concurrent audits.
	pipelineFactory func() *Pipeline

	// concurrency caps simultaneous audits.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchResult pairs a URL with its audit outcome.
type BatchResult struct {
	// URL is the raw input URL.
	URL string

	// Report is the audit report, nil when the audit failed.
	Report *model.AuditReport

	// Err is the audit failure, nil on success.
	Err error
}

// BatchOption configures a BatchRunner.
type BatchOption func(*BatchRunner)

// WithConcurrency sets the maximum number of concurrent audits.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchRunner) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithBatchLogger sets a custom logger for batch runs.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchRunner) {
		b.logger = logger
	}
}

// NewBatchRunner creates a BatchRunner around a pipeline factory.
func NewBatchRunner(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchRunner {
	b := &BatchRunner{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	return b
}

// Run audits all URLs and returns results in input order. Individual
// audit failures are captured per URL rather than cancelling the
// batch; only context cancellation stops the run early.
func (b *BatchRunner) Run(ctx context.Context, urls []string) []BatchResult {
	b.logger.Info("starting batch audit",
		"total", len(urls),
		"concurrency", b.concurrency,
	)
	start := time.Now()

	results := make([]BatchResult, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, url := range urls {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				results[i] = BatchResult{URL: url, Err: ctx.Err()}
				return nil
			default:
			}

			report, err := b.pipelineFactory().Run(ctx, url)
			results[i] = BatchResult{URL: url, Report: report, Err: err}
			return nil
		})
	}

	// Goroutines only return nil; Wait is for completion, not errors.
	_ = g.Wait()

	b.logger.Info("batch audit complete",
		"total", len(urls),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	return results
}
