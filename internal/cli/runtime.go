package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-publishing/internal/config"
	"github.com/goliatone/go-publishing/pkg/settings"
	"github.com/goliatone/go-publishing/pkg/store"
	"github.com/goliatone/go-publishing/pkg/taxonomy"
)

// runtime wires the configured store, taxonomy and settings group for one
// command invocation.
type runtime struct {
	Config   config.Config
	Logger   *slog.Logger
	Store    store.Store
	Taxonomy settings.Taxonomy
	Group    *settings.Group

	closer func() error
}

func runtimeFromCommand(cmd *cobra.Command) (*runtime, error) {
	path, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return newRuntime(cmd.Context(), cfg, logger)
}

func newRuntime(ctx context.Context, cfg config.Config, logger *slog.Logger) (*runtime, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	rt := &runtime{Config: cfg, Logger: logger, closer: func() error { return nil }}

	if cfg.Database == "" {
		static, err := taxonomy.NewStatic(cfg.SeedCategories()...)
		if err != nil {
			return nil, fmt.Errorf("seed categories: %w", err)
		}
		rt.Store = store.NewMemory()
		rt.Taxonomy = static
		logger.Debug("using in-memory store", slog.Int("categories", len(cfg.Categories)))
	} else {
		opts := store.DefaultOptions(cfg.Database)
		opts.EnableWAL = cfg.DBWAL
		db, err := store.OpenSQLite(ctx, opts)
		if err != nil {
			return nil, err
		}
		if seeds := cfg.SeedCategories(); len(seeds) > 0 {
			if err := db.UpsertCategories(ctx, seeds...); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		rt.Store = db
		rt.Taxonomy = db
		rt.closer = db.Close
		logger.Debug("opened sqlite store", slog.String("path", cfg.Database))
	}

	group, err := settings.New(rt.Taxonomy,
		settings.WithLogger(logger),
		settings.WithOptionKey(cfg.OptionKey),
	)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.Group = group
	return rt, nil
}

func (rt *runtime) Close() error {
	if rt == nil || rt.closer == nil {
		return nil
	}
	return rt.closer()
}
