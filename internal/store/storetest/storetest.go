// Package storetest provides stores for tests.
package storetest

import (
	"context"
	"testing"

	"github.com/eduroese/To-Do-App/db"
	"github.com/eduroese/To-Do-App/internal/store"
)

// NewGorm returns a migrated GormStore backed by a private in-memory SQLite
// database that is closed when the test ends.
func NewGorm(t testing.TB) *store.GormStore {
	t.Helper()

	ctx := context.Background()

	gdb, err := db.OpenGorm(ctx, db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}

	s := store.NewGormStore(gdb)
	t.Cleanup(func() { _ = s.Close(ctx) })

	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate store: %v", err)
	}

	return s
}

// Provider always returns S, or Err when set.
type Provider struct {
	S   store.Store
	Err error
}

func (p Provider) Store(ctx context.Context) (store.Store, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return p.S, nil
}
