package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hongminglow/staffly-be/internal/config"
	"github.com/hongminglow/staffly-be/internal/obs"
	"github.com/hongminglow/staffly-be/internal/server"
	"github.com/hongminglow/staffly-be/internal/storage"
	"github.com/hongminglow/staffly-be/internal/storage/backend"
	"github.com/hongminglow/staffly-be/internal/storage/redis"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := obs.NewLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := obs.SetupTracing(ctx, cfg.OTLPEndpoint, cfg.TraceStdout)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("tracer shutdown failed", "error", err)
		}
	}()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	opts := server.Options{Logger: logger, Metrics: obs.NewMetrics()}
	if cfg.RedisURL != "" {
		denylist, err := redis.Open(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("init redis: %w", err)
		}
		defer denylist.Close()
		opts.Revoker = denylist
		logger.Info("token revocation enabled")
	}

	srv := server.New(cfg, store, opts)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("STAFFLY backend listening", "addr", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown error", "error", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (storage.Store, error) {
	store, kind, err := backend.Open(ctx, cfg.DatabaseURL, cfg.MongoDatabase)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	logger.Info("storage ready", "backend", kind)
	if kind == backend.KindMemory {
		logger.Warn("using in-memory storage; data is lost on restart")
	}

	if cfg.RunMigrations {
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close(ctx)
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return store, nil
}
