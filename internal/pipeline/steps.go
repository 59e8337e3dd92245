package pipeline

import (
	"context"
	"strings"

	"github.com/platescan/platescan/internal/extractor"
	"github.com/platescan/platescan/internal/fetcher"
	"github.com/platescan/platescan/internal/insight"
	"github.com/platescan/platescan/internal/model"
	"github.com/platescan/platescan/internal/rules"
)

// NewAuditPipeline wires the standard five-step audit sequence.
// The fetcher and generator are injected so server and CLI can share
// the wiring while tests substitute their own.
func NewAuditPipeline(f *fetcher.Fetcher, g *insight.Generator, opts ...Option) *Pipeline {
	return New([]Step{
		&FetchStep{fetcher: f},
		&ExtractStep{},
		&ScoreStep{},
		&AssembleStep{},
		&InsightStep{generator: g},
	}, opts...)
}

// FetchStep normalizes the input URL and retrieves the page markup.
// This is the only step whose failure aborts the audit.
type FetchStep struct {
	fetcher *fetcher.Fetcher
}

// Name returns the step name.
func (s *FetchStep) Name() string { return "fetch" }

// Do normalizes and fetches the page.
func (s *FetchStep) Do(ctx context.Context, audit *Audit) error {
	normalized, err := fetcher.NormalizeURL(audit.InputURL)
	if err != nil {
		return err
	}
	audit.URL = normalized

	result, err := s.fetcher.Fetch(ctx, normalized)
	if err != nil {
		return err
	}

	audit.HTML = result.HTML
	audit.LoadTimeMs = result.LoadTimeMs
	return nil
}

// ExtractStep parses the markup and derives the signal record.
// Lenient by contract: it cannot fail.
type ExtractStep struct{}

// Name returns the step name.
func (s *ExtractStep) Name() string { return "extract" }

// Do parses and extracts signals.
func (s *ExtractStep) Do(_ context.Context, audit *Audit) error {
	doc := extractor.Parse(audit.HTML)
	audit.Signals = extractor.Extract(doc)
	audit.Signals.HTTPS = strings.HasPrefix(audit.URL, "https://")
	return nil
}

// ScoreStep runs the rule engine.
type ScoreStep struct{}

// Name returns the step name.
func (s *ScoreStep) Name() string { return "score" }

// Do computes the blended score, breakdown, and issue list.
func (s *ScoreStep) Do(_ context.Context, audit *Audit) error {
	audit.Score, audit.Breakdown, audit.Issues = rules.Score(audit.Signals, audit.URL, audit.LoadTimeMs)
	return nil
}

// AssembleStep merges the scored results into the final report.
type AssembleStep struct{}

// Name returns the step name.
func (s *AssembleStep) Name() string { return "assemble" }

// Do builds the AuditReport: truncated title, normalized URL echo,
// score, breakdown, and sorted issues.
func (s *AssembleStep) Do(_ context.Context, audit *Audit) error {
	audit.Report = &model.AuditReport{
		URL:        audit.URL,
		Title:      model.TruncateTitle(audit.Signals.Title),
		Score:      audit.Score,
		Breakdown:  audit.Breakdown,
		Issues:     audit.Issues,
		LoadTimeMs: audit.LoadTimeMs,
	}
	return nil
}

// InsightStep augments the report with AI insights. It runs only
// after scoring and never fails: a nil generator result leaves
// AIInsights absent.
type InsightStep struct {
	generator *insight.Generator
}

// Name returns the step name.
func (s *InsightStep) Name() string { return "insight" }

// Do attaches insights when the generator is configured and any model
// in the fallback chain succeeds.
func (s *InsightStep) Do(ctx context.Context, audit *Audit) error {
	if s.generator == nil {
		return nil
	}
	audit.Report.AIInsights = s.generator.Generate(ctx, audit.Report)
	return nil
}
