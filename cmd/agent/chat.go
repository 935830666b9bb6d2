package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mcp-agent/internal/di"
	"mcp-agent/internal/infrastructure/metrics"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive chat (default)",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(ctx, di.Config{
		App:     cfg,
		Version: version,
		In:      os.Stdin,
		Out:     os.Stdout,
	})
	if err != nil {
		return err
	}
	defer container.Close()

	if cfg.Metrics.Addr != "" {
		metricsCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := metrics.Serve(metricsCtx, cfg.Metrics.Addr, container.Metrics, container.Logger); err != nil {
				container.Logger.Error("Metrics server failed", "error", err)
			}
		}()
	}

	if err := container.Session.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			container.Logger.Info("Chat stopped by signal")
			return nil
		}
		return err
	}
	return nil
}
