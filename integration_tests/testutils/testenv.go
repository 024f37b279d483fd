package testutils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gonzoleeman/disc-golf-scoring-app/app"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/observability"
	"github.com/gonzoleeman/disc-golf-scoring-app/app/shared/clock"
	"github.com/gonzoleeman/disc-golf-scoring-app/config"
	"github.com/gonzoleeman/disc-golf-scoring-app/integration_tests/containers"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// Tables lists every application table, children first.
var Tables = []string{"money_round_details", "money_rounds", "round_details", "rounds"}

// TestEnvironment is a running application on a throwaway Postgres.
type TestEnvironment struct {
	Ctx         context.Context
	PgContainer *postgres.PostgresContainer
	Pool        *pgxpool.Pool
	Config      *config.Config
	App         *app.App
	T           *testing.T
}

// NewTestEnvironment starts Postgres, builds the application against it and
// runs its router. Everything is torn down with the test.
func NewTestEnvironment(t *testing.T, now time.Time) *TestEnvironment {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	pg, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		t.Fatalf("postgres: %v", err)
	}
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("pgx pool: %v", err)
	}
	t.Cleanup(pool.Close)

	cfg := config.Default()
	cfg.Database.Driver = config.DriverPostgres
	cfg.Database.DSN = dsn
	cfg.Observability.Environment = "test"

	a, err := app.NewApp(ctx, cfg, observability.NewNoop(), clock.NewAnchorClock(now))
	if err != nil {
		t.Fatalf("app: %v", err)
	}
	go func() { _ = a.Run(ctx) }()
	select {
	case <-a.Running():
	case <-time.After(10 * time.Second):
		t.Fatal("router did not start")
	}
	t.Cleanup(func() {
		cancel()
		if err := a.Close(); err != nil {
			t.Errorf("close app: %v", err)
		}
	})

	return &TestEnvironment{Ctx: ctx, PgContainer: pg, Pool: pool, Config: cfg, App: a, T: t}
}

// Reset empties the round and money tables; the seeded roster stays.
func (e *TestEnvironment) Reset() {
	e.T.Helper()
	for _, table := range Tables {
		if _, err := e.Pool.Exec(e.Ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			e.T.Fatalf("reset %s: %v", table, err)
		}
	}
}

// Count returns the number of rows in table.
func (e *TestEnvironment) Count(table string) int {
	e.T.Helper()
	var n int
	if err := e.Pool.QueryRow(e.Ctx, fmt.Sprintf("SELECT count(*) FROM %s", table)).Scan(&n); err != nil {
		e.T.Fatalf("count %s: %v", table, err)
	}
	return n
}
