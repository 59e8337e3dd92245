package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/platescan/platescan/internal/config"
	"github.com/platescan/platescan/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the audit HTTP API",
		Long: `Serve starts the audit HTTP API.

Endpoints:
  POST /audit             Audit a website ({"url": "example.com"})
  GET  /insight-selftest  Probe every configured insight model
  GET  /healthz           Liveness check

AI insights require GEMINI_API_KEY in the environment or a .env file.
Without a key, audits still work; reports simply omit the insights.

Examples:
  # Serve on the default port (8080)
  platescan serve

  # Serve on a custom port
  platescan serve --port 3000

  # Use a custom configuration file
  platescan serve -c myconfig.yml`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().IntP("port", "p", config.DefaultPort,
		"HTTP listen port (also settable via PLATESCAN_PORT)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .platescan.yml in current or XDG config directory)")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildServeConfig(cmd)
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
		logger.Info("received shutdown signal, stopping...")
		cancel()
	}()

	return server.New(cfg, logger).ListenAndServe(ctx)
}

// buildServeConfig creates a Config from environment, config file, and
// serve flags, in increasing order of precedence.
func buildServeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.New()

	configFlag, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if err := loadConfigFile(cfg, configFlag); err != nil {
		return nil, err
	}

	// Flags override both the environment and the config file, but
	// only when explicitly set.
	if cmd.Flags().Changed("port") {
		cfg.Port, err = cmd.Flags().GetInt("port")
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// loadConfigFile merges a config file into cfg. An explicitly given
// path must exist; a missing default file is fine.
func loadConfigFile(cfg *config.Config, explicit string) error {
	path := config.FindConfigFile(explicit)
	if path == "" {
		if explicit != "" {
			return fmt.Errorf("%w: %s", config.ErrConfigNotFound, explicit)
		}
		return nil
	}

	if err := cfg.LoadFile(path); err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return nil
}
