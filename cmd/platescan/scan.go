package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/platescan/platescan/internal/config"
	"github.com/platescan/platescan/internal/fetcher"
	"github.com/platescan/platescan/internal/insight"
	"github.com/platescan/platescan/internal/model"
	"github.com/platescan/platescan/internal/pipeline"
	"github.com/platescan/platescan/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [url...]",
		Short: "Audit one or more websites from the command line",
		Long: `Scan audits websites without running the HTTP API.

It fetches each page, scores it across SEO, Content, Usability, and
Technical categories, and prints the issues found ordered by severity.
With GEMINI_API_KEY set, reports include AI-generated advice.

Examples:
  # Audit a single site
  platescan scan example.com

  # Audit several sites concurrently
  platescan scan joes-pizza.com marios-trattoria.com

  # Output JSON report
  platescan scan --json example.com

  # Write a Markdown report to a file
  platescan scan --markdown -o report.md example.com

  # Use a custom configuration file
  platescan scan -c myconfig.yml example.com

Configuration file (.platescan.yml) example:
  fetchTimeout: 20s
  concurrency: 8
  models:
    - gemini-2.0-flash
    - gemini-1.5-flash`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScanCmd,
	}

	// Fetch behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultFetchTimeout,
		"Timeout for fetching each page")

	// Batch scanning flags
	cmd.Flags().IntP("batch", "b", config.DefaultConcurrency,
		"Number of concurrent audits")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .platescan.yml in current or XDG config directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildScanConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	verbose := getVerboseFlag(cmd) || cfg.Verbose
	logger := setupLogger(verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, logger)
}

// buildScanConfig creates a Config from environment, config file, and
// scan flags, in increasing order of precedence.
func buildScanConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.New()

	configFlag, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if err := loadConfigFile(cfg, configFlag); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("timeout") {
		cfg.FetchTimeout, err = cmd.Flags().GetDuration("timeout")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("batch") {
		cfg.Concurrency, err = cmd.Flags().GetInt("batch")
		if err != nil {
			return nil, err
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.OutputFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Targets = args

	return cfg, nil
}

// runScan executes the audit for all targets.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	generator := insight.NewGenerator(
		cfg.APIKey,
		cfg.Models,
		insight.WithCallTimeout(cfg.InsightTimeout),
		insight.WithLogger(logger),
	)

	logger.Info("starting scan",
		"targets", cfg.Targets,
		"concurrency", cfg.Concurrency,
		"insightsEnabled", generator.Enabled(),
	)

	f := fetcher.New(fetcher.WithTimeout(cfg.FetchTimeout))
	runner := pipeline.NewBatchRunner(
		func() *pipeline.Pipeline {
			return pipeline.NewAuditPipeline(f, generator, pipeline.WithLogger(logger))
		},
		pipeline.WithConcurrency(cfg.Concurrency),
		pipeline.WithBatchLogger(logger),
	)

	start := time.Now()
	results := runner.Run(ctx, cfg.Targets)

	var failed int
	for _, result := range results {
		if result.Err != nil {
			failed++
			logger.Error("audit failed", "url", result.URL, "error", result.Err)
			fmt.Fprintf(os.Stderr, "Audit error for %s: %v\n", result.URL, result.Err)
			continue
		}

		if err := outputReport(cfg, result.Report); err != nil {
			logger.Error("report failed", "url", result.URL, "error", err)
			fmt.Fprintf(os.Stderr, "Report error for %s: %v\n", result.URL, err)
		}
	}

	fmt.Fprintf(os.Stderr, "\nAudited %d site(s) in %s\n",
		len(results), time.Since(start).Round(time.Millisecond))

	if failed > 0 {
		return fmt.Errorf("%d of %d audit(s) failed", failed, len(results))
	}
	return nil
}

// outputReport renders the audit report in the requested format.
func outputReport(cfg *config.Config, auditReport *model.AuditReport) error {
	var output *os.File
	if cfg.OutputFile != "" {
		dir := filepath.Dir(cfg.OutputFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Append so multi-target scans accumulate into one file.
		f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("failed to open output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	default:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	}

	if _, err := writer.Write(auditReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
