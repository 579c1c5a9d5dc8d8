package migrate

import (
	"context"
	"fmt"

	"github.com/imarket-ke/imarket-backend/pkg/config"
	"github.com/imarket-ke/imarket-backend/pkg/logger"
	"github.com/imarket-ke/imarket-backend/pkg/storage"
)

// MaybeRunDev executes migrations automatically when the app runs in
// dev mode against the postgres backend with auto-migrate enabled.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, store *storage.GormStore) error {
	if !cfg.App.IsDev() || !cfg.Storage.AutoMigrate {
		return nil
	}
	if cfg.Storage.Driver != config.StorageDriverPostgres {
		return nil
	}

	sqlDB, err := store.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env})
	logg.Info(ctx, "running Goose migrations (dev auto-run)")

	if err := Up(ctx, sqlDB); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "Goose migrations completed")
	return nil
}
