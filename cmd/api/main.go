// Package main is the entry point for the Ecooy API server.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ecooy/backend/config"
	"github.com/ecooy/backend/internal/infra/dependency"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Server.SlogLevel(),
	}))
	slog.SetDefault(logger)

	slog.Info("starting Ecooy API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	injector, err := dependency.NewInjector(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	runErr := injector.Run(ctx)

	if err := injector.Close(); err != nil {
		slog.Error("failed to release resources", "error", err)
	}

	if runErr != nil {
		slog.Error("server stopped with error", "error", runErr)
		os.Exit(1)
	}

	slog.Info("server exited properly")
}
