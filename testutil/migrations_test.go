package testutil_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/migrations"
	"github.com/pkordes/trip-planner/backend/testutil"
)

// TestMigrations walks the schema version by version against a real Postgres:
// each step adds exactly the tables it owns, migrations.Up is a no-op on a
// current schema, and resetting to version 0 drops everything again.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)
	ctx := context.Background()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	require.NoError(t, err, "create goose provider")

	// The repo package's TestMain may already have migrated this database.
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "initial reset")

	steps := []struct {
		version int64
		present []string
		absent  []string
	}{
		{version: 1, present: []string{"trips"}, absent: []string{"activities"}},
		{version: 2, present: []string{"trips", "activities"}},
	}
	for _, s := range steps {
		_, err := provider.UpTo(ctx, s.version)
		require.NoError(t, err, "up to %d", s.version)

		for _, table := range s.present {
			assert.True(t, tableExists(t, db, table), "v%d: expected table %q", s.version, table)
		}
		for _, table := range s.absent {
			assert.False(t, tableExists(t, db, table), "v%d: unexpected table %q", s.version, table)
		}
	}

	applied, err := migrations.Up(ctx, db)
	require.NoError(t, err, "migrations.Up on current schema")
	assert.Zero(t, applied)

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "reset")
	for _, table := range []string{"trips", "activities"} {
		assert.False(t, tableExists(t, db, table), "expected table %q to be dropped", table)
	}

	// Leave the schema migrated for whatever runs next.
	_, err = migrations.Up(ctx, db)
	require.NoError(t, err, "re-apply")
}

// The schema itself refuses a trip that ends before it starts, and dropping a
// trip takes its activities with it.
func TestMigrations_Constraints(t *testing.T) {
	db := testutil.NewSQLDB(t)
	ctx := context.Background()

	_, err := migrations.Up(ctx, db)
	require.NoError(t, err)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback() })

	t.Run("ends before starts", func(t *testing.T) {
		_, err := tx.ExecContext(ctx, `SAVEPOINT bad_trip`)
		require.NoError(t, err)

		_, err = tx.ExecContext(ctx, `
			INSERT INTO trips (destination, starts_at, ends_at)
			VALUES ('Oslo', '2024-03-10T00:00:00Z', '2024-03-09T00:00:00Z')`)
		var pgErr *pgconn.PgError
		require.True(t, errors.As(err, &pgErr), "expected a Postgres error, got %v", err)
		assert.Equal(t, "23514", pgErr.Code)
		assert.Equal(t, "trips_ends_after_starts", pgErr.ConstraintName)

		_, err = tx.ExecContext(ctx, `ROLLBACK TO SAVEPOINT bad_trip`)
		require.NoError(t, err)
	})

	t.Run("delete cascades", func(t *testing.T) {
		var tripID string
		err := tx.QueryRowContext(ctx, `
			INSERT INTO trips (destination, starts_at, ends_at)
			VALUES ('Oslo', '2024-03-08T00:00:00Z', '2024-03-10T00:00:00Z')
			RETURNING id`).Scan(&tripID)
		require.NoError(t, err)

		_, err = tx.ExecContext(ctx, `
			INSERT INTO activities (trip_id, title, occurs_at)
			VALUES ($1, 'Fjord cruise', '2024-03-09T10:00:00Z')`, tripID)
		require.NoError(t, err)

		_, err = tx.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, tripID)
		require.NoError(t, err)

		var n int
		err = tx.QueryRowContext(ctx, `SELECT count(*) FROM activities WHERE trip_id = $1`, tripID).Scan(&n)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()

	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public'
			AND   table_name   = $1
		)`
	var exists bool
	err := db.QueryRowContext(context.Background(), q, table).Scan(&exists)
	require.NoError(t, err, "check table existence for %q", table)
	return exists
}
