// Package commands wires the CLI entry points.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-normalizer/internal/config"
)

var logLevel string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "statement-normalizer",
		Short:        "Normalize extracted bank statement tables into typed transactions",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "zerolog level (debug, info, warn, error)")
	cmd.AddCommand(newConvertCmd(), newServeCmd())
	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}
