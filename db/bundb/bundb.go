// Package bundb opens the bun connection for the configured driver and runs module migrations.
package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	moneydb "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/infrastructure/repositories"
	moneymigrations "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/infrastructure/repositories/migrations"
	rounddb "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/infrastructure/repositories"
	roundmigrations "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/infrastructure/repositories/migrations"
	"github.com/gonzoleeman/disc-golf-scoring-app/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	_ "modernc.org/sqlite"
)

// DBService bundles the connection pool with the module repositories.
type DBService struct {
	RoundDB rounddb.Repository
	MoneyDB moneydb.Repository
	db      *bun.DB
}

// GetDB returns the underlying database connection pool.
func (dbService *DBService) GetDB() *bun.DB {
	return dbService.db
}

// Close releases the pool.
func (dbService *DBService) Close() error {
	return dbService.db.Close()
}

// NewBunDBService opens the database and builds the repositories on top of it.
func NewBunDBService(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*DBService, error) {
	db, err := Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if logger != nil {
		logger.InfoContext(ctx, "Database connected", slog.String("driver", cfg.Driver))
	}

	return &DBService{
		RoundDB: rounddb.NewRepository(db),
		MoneyDB: moneydb.NewRepository(db),
		db:      db,
	}, nil
}

// Open returns a pinged bun.DB for postgres or sqlite.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*bun.DB, error) {
	var db *bun.DB
	switch cfg.Driver {
	case config.DriverPostgres:
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
		db = bun.NewDB(sqldb, pgdialect.New())
	case config.DriverSQLite:
		sqldb, err := sql.Open("sqlite", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		db = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Migrators returns one migrator per module, keyed by module name.
// Each module keeps its own bookkeeping tables so they can be rolled back independently.
func Migrators(db *bun.DB) map[string]*migrate.Migrator {
	return map[string]*migrate.Migrator{
		"round": migrate.NewMigrator(db, roundmigrations.Migrations,
			migrate.WithTableName("round_migrations"), migrate.WithLocksTableName("round_migration_locks")),
		"money": migrate.NewMigrator(db, moneymigrations.Migrations,
			migrate.WithTableName("money_migrations"), migrate.WithLocksTableName("money_migration_locks")),
	}
}

// MigrationOrder is the order modules must be migrated in; money tables reference rounds.
var MigrationOrder = []string{"round", "money"}

// MigrateAll initialises and applies every pending migration in MigrationOrder.
func MigrateAll(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	migrators := Migrators(db)
	for _, name := range MigrationOrder {
		m := migrators[name]
		if err := m.Init(ctx); err != nil {
			return fmt.Errorf("init %s migrations: %w", name, err)
		}
		group, err := m.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("migrate %s: %w", name, err)
		}
		if logger != nil && !group.IsZero() {
			logger.InfoContext(ctx, "Applied migrations", slog.String("module", name), slog.String("group", group.String()))
		}
	}
	return nil
}
