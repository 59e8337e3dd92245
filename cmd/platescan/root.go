// Package main provides the entry point for the platescan CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	intlog "github.com/platescan/platescan/internal/log"
)

// NewRootCmd creates the root command for platescan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "platescan",
		Short: "Website quality auditor for restaurants",
		Long: `platescan audits restaurant and small-business websites.

It fetches a single page, extracts structural signals from the markup,
scores the site 0-100 across SEO, Content, Usability, and Technical
categories, and lists what to fix ordered by severity. With a Gemini
API key configured (GEMINI_API_KEY), reports also include AI-generated
improvement advice.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	// A .env file is the common way small deployments carry the
	// Gemini credential; absence is fine.
	_ = godotenv.Load()

	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogger creates a structured logger based on verbosity.
// The masking handler keeps the API key out of log output no matter
// what gets logged.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(intlog.NewMaskingHandler(handler))
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}
