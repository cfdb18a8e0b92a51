package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hongminglow/staffly-be/internal/config"
	"github.com/hongminglow/staffly-be/internal/obs"
	"github.com/hongminglow/staffly-be/internal/storage/backend"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply Postgres migrations or create Mongo indexes, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger := obs.NewLogger(cfg.LogLevel, cfg.LogFormat)

		ctx := cmd.Context()
		store, kind, err := backend.Open(ctx, cfg.DatabaseURL, cfg.MongoDatabase)
		if err != nil {
			return fmt.Errorf("init database: %w", err)
		}
		defer store.Close(ctx)

		if err := store.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migrations applied", "backend", kind)
		return nil
	},
}
