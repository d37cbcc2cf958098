// Command engine runs the scorecard reconciliation and fantasy scoring
// loops until interrupted.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pitchside/fantasy-cricket/internal/app"
	"github.com/pitchside/fantasy-cricket/internal/config"
	"github.com/pitchside/fantasy-cricket/internal/platform/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	engine, err := app.NewEngine(cfg, logger)
	if err != nil {
		logger.Error("build engine", "error", err)
		os.Exit(1)
	}
	defer func() { _ = engine.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("engine starting",
		"env", cfg.AppEnv,
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
		"memory_store", cfg.UseMemoryStore,
	)
	if err := engine.Scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("scheduler stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("engine stopped")
}
