package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/database"
)

func TestMigrate_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "tally.db")

	require.NoError(t, database.Migrate(ctx, path))

	db, err := database.Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	var name string
	err = db.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'transactions'`,
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "transactions", name)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tally.db")

	require.NoError(t, database.Migrate(ctx, path))

	db, err := database.Open(ctx, path)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO transactions (date, type, category, amount, description)
		 VALUES ('2024-01-05 10:00:00', 'income', 'Salary', '50000', '')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	require.NoError(t, database.Migrate(ctx, path))
	require.NoError(t, database.Migrate(ctx, path))

	db, err = database.Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestMigrate_AdoptsExistingTable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tally.db")

	db, err := database.Open(ctx, path)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `
		CREATE TABLE transactions (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			date        TEXT NOT NULL,
			type        TEXT NOT NULL,
			category    TEXT NOT NULL,
			amount      TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		)`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		`INSERT INTO transactions (date, type, category, amount)
		 VALUES ('2024-01-10 09:30:00', 'expense', 'Food', '200')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	require.NoError(t, database.Migrate(ctx, path))

	db, err = database.Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	var category string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT category FROM transactions`).Scan(&category))
	assert.Equal(t, "Food", category)
}

func TestOpen_UnreachablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "tally.db")

	_, err := database.Open(context.Background(), path)
	assert.Error(t, err)
}
