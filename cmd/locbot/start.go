package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sandevgo/locbot/pkg/log"
	"github.com/sandevgo/locbot/pkg/srv"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the LocBot services",
	Long:  `Initializes and starts the configured transports (Telegram, console) backed by the dialog engine and storage.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting locbot")

		// Define services using the setup.go logic
		services := NewServices(ctx)

		// Start services
		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("locbot has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
