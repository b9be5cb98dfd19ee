// Package cmd implements the agencydash command line.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"agencydash/config"
	"agencydash/connection"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "agencydash",
		Short:         "Agency operations dashboard backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCmd(), newEmployeeCmd(), newReportCmd())
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup loads configuration and opens the configured store.
func setup(ctx context.Context) (*config.Config, *logrus.Logger, *connection.Backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	logger := cfg.NewLogger()
	backend, err := connection.OpenBackend(ctx, cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, backend, nil
}
