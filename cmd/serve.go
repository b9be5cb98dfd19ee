package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"agencydash/config"
	"agencydash/connection"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return connection.StartServer(ctx, cfg, cfg.NewLogger())
		},
	}
}
