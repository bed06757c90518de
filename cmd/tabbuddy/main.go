package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/SscSPs/tab_buddy/internal/platform/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		slog.Error("Command failed", slog.String("error", err.Error()))
		return 1
	}
	return 0
}
