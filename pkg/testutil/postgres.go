package testutil

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	pgutil "github.com/Farhan-176/Mcrofinance-Loan-App/pkg/postgres"
)

const postgresImage = "postgres:16-alpine"

// PostgresContainer is a disposable database with the schema applied.
type PostgresContainer struct {
	DSN  string
	Pool *pgxpool.Pool
}

// StartPostgres runs a PostgreSQL container, applies every migration in
// migrationsDir through golang-migrate and tears everything down when t ends.
func StartPostgres(t *testing.T, migrationsDir string) *PostgresContainer {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := tcpostgres.Run(ctx, postgresImage,
		tcpostgres.WithDatabase("qarz_test"),
		tcpostgres.WithUsername("qarz"),
		tcpostgres.WithPassword("qarz"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		stopCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
		defer stop()
		if err := container.Terminate(stopCtx); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "postgres connection string")

	dir, err := filepath.Abs(migrationsDir)
	require.NoError(t, err)
	require.NoError(t, pgutil.RunMigrations(dsn, "file://"+filepath.ToSlash(dir)), "apply migrations")

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err, "open pool")
	t.Cleanup(pool.Close)
	require.NoError(t, pgutil.HealthCheck(ctx, pool))

	return &PostgresContainer{DSN: dsn, Pool: pool}
}

// Truncate empties tables, cascading to dependents, so subtests start clean.
func (pc *PostgresContainer) Truncate(t *testing.T, tables ...string) {
	t.Helper()
	if len(tables) == 0 {
		return
	}
	quoted := make([]string, len(tables))
	for i, table := range tables {
		quoted[i] = pgx.Identifier{table}.Sanitize()
	}
	_, err := pc.Pool.Exec(context.Background(), "TRUNCATE TABLE "+strings.Join(quoted, ", ")+" CASCADE")
	require.NoError(t, err, "truncate %v", tables)
}
