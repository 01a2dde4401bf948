package db

import (
	"context"
	"fmt"

	"github.com/eduroese/To-Do-App/internal/config"
	"github.com/eduroese/To-Do-App/internal/store"
)

// Dialer opens a new connection to the configured store.
type Dialer func(ctx context.Context) (store.Store, error)

// NewDialer returns a Dialer for the backend named by cfg.Driver. Every
// connection it opens has been migrated.
func NewDialer(cfg config.StoreConfig) (Dialer, error) {
	var open Dialer

	switch cfg.Driver {
	case DriverMongo:
		open = func(ctx context.Context) (store.Store, error) {
			return store.DialMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		}
	case DriverPostgres, DriverMySQL, DriverSQLite:
		open = func(ctx context.Context) (store.Store, error) {
			gdb, err := OpenGorm(ctx, cfg.Driver, cfg.DSN)
			if err != nil {
				return nil, err
			}
			return store.NewGormStore(gdb), nil
		}
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}

	return func(ctx context.Context) (store.Store, error) {
		if cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()
		}

		s, err := open(ctx)
		if err != nil {
			return nil, err
		}

		if err := s.Migrate(ctx); err != nil {
			_ = s.Close(context.Background())
			return nil, fmt.Errorf("migrate %s store: %w", cfg.Driver, err)
		}

		return s, nil
	}, nil
}
