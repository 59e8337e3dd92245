package pipeline

import (
	"context"
	"log/slog"

	"github.com/platescan/platescan/internal/model"
)

// Audit is the mutable state threaded through the pipeline steps.
// Each audit request owns exactly one Audit; nothing is shared or
// persisted across requests.
type Audit struct {
	// InputURL is the raw user input.
	InputURL string

	// URL is the scheme-normalized URL actually fetched.
	URL string

	// HTML is the raw markup from the fetch step.
	HTML string

	// LoadTimeMs is the measured retrieval time.
	LoadTimeMs int

	// Signals is the extracted signal record.
	Signals model.Signals

	// Score, Breakdown, and Issues come from the rule engine.
	Score     int
	Breakdown model.Breakdown
	Issues    []model.Issue

	// Report is the assembled result, nil until the assemble step runs.
	Report *model.AuditReport
}

// Step is one stage of the audit pipeline.
//
// Design decision: An interface rather than function types because
// steps carry injected collaborators (fetcher, insight generator) and
// a Name() keeps log lines readable.
type Step interface {
	// Do executes the step against the audit state. A returned error
	// aborts the remaining steps; steps whose failure should degrade
	// rather than abort must swallow their own errors.
	Do(ctx context.Context, audit *Audit) error

	// Name returns the step's name for logging.
	Name() string
}

// Pipeline executes steps in order.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a Pipeline from the given steps.
func New(steps []Step, opts ...Option) *Pipeline {
	p := &Pipeline{steps: steps}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// Run executes the audit for one URL and returns the assembled report.
// The first step error aborts the run; in practice only the fetch
// step can fail, so a non-nil error always means the page could not
// be retrieved.
func (p *Pipeline) Run(ctx context.Context, rawURL string) (*model.AuditReport, error) {
	audit := &Audit{InputURL: rawURL}

	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		p.logger.Debug("executing step", "step", step.Name(), "url", rawURL)

		if err := step.Do(ctx, audit); err != nil {
			p.logger.Error("step failed", "step", step.Name(), "url", rawURL, "error", err)
			return nil, err
		}
	}

	return audit.Report, nil
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
