package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/candyledger/internal/api"
	"github.com/mcoot/candyledger/internal/config"
	"github.com/mcoot/candyledger/internal/factory"
)

const closeTimeout = 30 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return 1
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create application factory
	app, err := factory.New(ctx, factory.Config{Env: cfg, Logger: logger})
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return 1
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:     logger,
		Controller: app.Controller,
		Metrics:    app.Metrics,
		TokenHash:  cfg.APITokenHash,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx)
	})
	g.Go(func() error {
		return app.Jobs.Run(gctx)
	})

	logger.Info("candy ledger started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.StorageType))

	code := 0
	if err := g.Wait(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		code = 1
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := app.Close(closeCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		code = 1
	}

	logger.Info("candy ledger stopped")
	return code
}
