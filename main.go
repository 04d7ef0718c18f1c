package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tvalderas/battfit-go/cmd"
	"github.com/tvalderas/battfit-go/internal/conf"
	"github.com/tvalderas/battfit-go/internal/logging"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		logging.Init(slog.LevelInfo)
		logging.Fatal("error loading configuration", "error", err)
	}

	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	logging.Init(level)

	// SIGINT/SIGTERM cancel the probe loop and the seed run cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Cobra already printed the error; exit non-zero for the supervisor.
		os.Exit(1)
	}
}
