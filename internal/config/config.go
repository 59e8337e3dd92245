package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "platescan"

	// DefaultPort is the HTTP listen port for the audit API.
	DefaultPort = 8080

	// DefaultFetchTimeout bounds a single page retrieval. Slow shared
	// hosting is common for small-business sites, so this is generous
	// while still keeping the API responsive.
	DefaultFetchTimeout = 15 * time.Second

	// DefaultInsightTimeout bounds each individual model call in the
	// insight fallback chain.
	DefaultInsightTimeout = 30 * time.Second

	// DefaultConcurrency is the number of concurrent audits when the
	// CLI is given multiple URLs.
	DefaultConcurrency = 4

	// EnvAPIKey is the environment variable holding the Gemini
	// credential. When unset, AI insights are disabled and audits
	// otherwise proceed unchanged.
	EnvAPIKey = "GEMINI_API_KEY"

	// EnvPort overrides the listen port.
	EnvPort = "PLATESCAN_PORT"
)

// DefaultModels is the ordered insight fallback chain. The ordering
// is a deliberate policy decision (fastest, cheapest first; older
// models as fallback) and must stay a slice: a map or set would lose
// the deterministic iteration the chain depends on.
func DefaultModels() []string {
	return []string{
		"gemini-2.0-flash",
		"gemini-2.0-flash-lite",
		"gemini-1.5-flash",
	}
}

// Config holds all options for platescan.
//
// Design decision: A single flat struct instead of nested sub-configs.
// The option count is manageable and nesting would add ceremony
// without benefit.
type Config struct {
	// Port is the HTTP listen port for `platescan serve`.
	Port int

	// APIKey is the Gemini credential enabling AI insights.
	// Never written to config files; loaded from the environment.
	APIKey string

	// Models is the ordered insight model fallback chain.
	Models []string

	// FetchTimeout bounds a single page retrieval.
	FetchTimeout time.Duration

	// InsightTimeout bounds each individual insight model call.
	InsightTimeout time.Duration

	// Concurrency caps simultaneous audits in CLI batch mode.
	Concurrency int

	// Verbose enables slog.LevelDebug output.
	Verbose bool

	// JSONReport selects JSON output for CLI scans.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output for CLI scans.
	MarkdownReport bool

	// OutputFile redirects the CLI report to a file instead of stdout.
	OutputFile string

	// Targets is the list of URLs to audit (CLI scan mode).
	Targets []string
}

// New returns a Config populated with defaults and environment
// overrides.
func New() *Config {
	cfg := &Config{
		Port:           DefaultPort,
		Models:         DefaultModels(),
		FetchTimeout:   DefaultFetchTimeout,
		InsightTimeout: DefaultInsightTimeout,
		Concurrency:    DefaultConcurrency,
	}

	cfg.APIKey = os.Getenv(EnvAPIKey)

	if port := os.Getenv(EnvPort); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}

	return cfg
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return ErrInvalidPort
	}
	if c.FetchTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if len(c.Models) == 0 {
		return ErrNoModels
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingFormats
	}
	return nil
}

// InsightsEnabled reports whether a credential is configured.
func (c *Config) InsightsEnabled() bool {
	return c.APIKey != ""
}

// XDGConfigDir returns the XDG config directory for platescan.
// On Linux: ~/.config/platescan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
