// Package store opens the configured record store.
package store

import (
	"context"
	"fmt"

	"github.com/goran-ethernal/ChainScanner/internal/logger"
	"github.com/goran-ethernal/ChainScanner/internal/store/postgres"
	"github.com/goran-ethernal/ChainScanner/internal/store/sqlite"
	"github.com/goran-ethernal/ChainScanner/pkg/config"
	pkgstore "github.com/goran-ethernal/ChainScanner/pkg/store"
)

// Open creates the store selected by cfg.Driver and applies its migrations.
func Open(ctx context.Context, cfg config.StoreConfig, log *logger.Logger) (pkgstore.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if cfg.SQLite == nil {
			return nil, fmt.Errorf("sqlite configuration is missing")
		}
		s, err := sqlite.New(*cfg.SQLite, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		if cfg.Postgres == nil {
			return nil, fmt.Errorf("postgres configuration is missing")
		}
		s, err := postgres.New(ctx, *cfg.Postgres, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %q", cfg.Driver)
	}
}
