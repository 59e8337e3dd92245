package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/platescan/platescan/internal/model"
)

// DefaultCallTimeout bounds each individual model call so a hung
// endpoint cannot stall the audit response indefinitely.
const DefaultCallTimeout = 30 * time.Second

// probeTruncateLen is how much reply or error text a self-test probe
// keeps. Enough to diagnose, short enough to render in a terminal.
const probeTruncateLen = 120

// Generator produces AI insights through an ordered model fallback
// chain.
//
// Design decision: The generator is explicitly constructed and passed
// to callers (no package-level singleton, no ambient globals) so tests
// can point it at an httptest server and production wiring stays
// visible at the call site.
type Generator struct {
	// apiKey is the Gemini credential. Empty disables the feature.
	apiKey string

	// models is the ordered fallback chain. Order is a load-bearing
	// policy decision: the chain is iterated front to back with
	// early exit on first success, never reshuffled.
	models []string

	// httpClient issues the model calls.
	httpClient *http.Client

	// baseURL is the API root, overridable for tests.
	baseURL string

	// callTimeout bounds each individual model call.
	callTimeout time.Duration

	// logger records per-model failures as the chain advances.
	logger *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Generator) {
		g.httpClient = client
	}
}

// WithBaseURL points the generator at a different API root.
func WithBaseURL(baseURL string) Option {
	return func(g *Generator) {
		g.baseURL = baseURL
	}
}

// WithCallTimeout overrides the per-model call deadline.
func WithCallTimeout(timeout time.Duration) Option {
	return func(g *Generator) {
		g.callTimeout = timeout
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a Generator for the given credential and
// ordered model chain.
func NewGenerator(apiKey string, models []string, opts ...Option) *Generator {
	g := &Generator{
		apiKey:      apiKey,
		models:      models,
		baseURL:     DefaultBaseURL,
		callTimeout: DefaultCallTimeout,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.httpClient == nil {
		g.httpClient = &http.Client{}
	}

	return g
}

// Enabled reports whether a credential is configured.
func (g *Generator) Enabled() bool {
	return g.apiKey != ""
}

// Generate produces insights for a scored report, or nil when the
// feature is disabled or every model in the chain fails. It never
// returns an error: insight failure degrades the feature, not the
// audit.
func (g *Generator) Generate(ctx context.Context, report *model.AuditReport) *model.AIInsights {
	if !g.Enabled() {
		return nil
	}

	prompt := buildPrompt(report)

	for _, modelID := range g.models {
		insights, err := g.tryModel(ctx, modelID, prompt)
		if err != nil {
			g.logger.Warn("insight model failed, trying next",
				"model", modelID,
				"error", err,
			)
			continue
		}

		g.logger.Debug("insights generated", "model", modelID)
		return insights
	}

	g.logger.Warn("all insight models failed, degrading to no insights",
		"models_tried", len(g.models),
	)
	return nil
}

// tryModel issues one generation call and strictly parses the reply.
func (g *Generator) tryModel(ctx context.Context, modelID, prompt string) (*model.AIInsights, error) {
	ctx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()

	reply, err := g.generate(ctx, modelID, prompt)
	if err != nil {
		return nil, err
	}

	cleaned := extractJSON(reply)
	if cleaned == "" {
		return nil, fmt.Errorf("reply contains no JSON object")
	}

	var insights model.AIInsights
	if err := json.Unmarshal([]byte(cleaned), &insights); err != nil {
		return nil, fmt.Errorf("parse insights: %w", err)
	}
	if err := insights.Validate(); err != nil {
		return nil, err
	}

	return &insights, nil
}

// ProbeResult is the outcome of one self-test call.
type ProbeResult struct {
	// Model is the model identifier probed.
	Model string `json:"model"`

	// OK is true when the call succeeded.
	OK bool `json:"ok"`

	// LatencyMs is the call duration in milliseconds.
	LatencyMs int `json:"latencyMs"`

	// Response is the truncated reply text on success.
	Response string `json:"response,omitempty"`

	// Error is the truncated error text on failure.
	Error string `json:"error,omitempty"`
}

// SelfTest probes each configured model once with a trivial prompt.
// It verifies credential and model availability without running a
// full audit.
func (g *Generator) SelfTest(ctx context.Context) []ProbeResult {
	results := make([]ProbeResult, 0, len(g.models))

	for _, modelID := range g.models {
		start := time.Now()

		callCtx, cancel := context.WithTimeout(ctx, g.callTimeout)
		reply, err := g.generate(callCtx, modelID, selfTestPrompt)
		cancel()

		probe := ProbeResult{
			Model:     modelID,
			LatencyMs: int(time.Since(start).Milliseconds()),
		}
		if err != nil {
			probe.Error = truncate(err.Error(), probeTruncateLen)
		} else {
			probe.OK = true
			probe.Response = truncate(reply, probeTruncateLen)
		}

		results = append(results, probe)
	}

	return results
}

// Models returns a copy of the configured fallback chain.
func (g *Generator) Models() []string {
	out := make([]string, len(g.models))
	copy(out, g.models)
	return out
}

// truncate shortens text to at most n runes.
func truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
