// Package testutils has helpers shared by repository and service tests.
package testutils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/gonzoleeman/disc-golf-scoring-app/config"
	"github.com/gonzoleeman/disc-golf-scoring-app/db/bundb"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DiscardLogger returns a logger that writes nowhere.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewSQLiteDB opens a private in-memory SQLite database with every module migrated.
// The database is closed when the test ends.
func NewSQLiteDB(t *testing.T) *bun.DB {
	t.Helper()
	ctx := context.Background()

	cfg := config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString()),
		MaxOpenConns: 1,
	}
	db, err := bundb.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := bundb.MigrateAll(ctx, db, nil); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}
