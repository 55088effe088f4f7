package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(Config{
		Path:    filepath.Join(t.TempDir(), "test.db"),
		Profile: ProfileLedger,
		Name:    "test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestMigrate_CreatesTables(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate())

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name IN ('positions', 'transactions')`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate())
	require.NoError(t, db.Migrate())
}

func TestSchema_RejectsNegativeShares(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate())

	_, err := db.Exec(`INSERT INTO positions (ticker, shares_owned, total_cost_basis, created_at, updated_at)
		VALUES ('AAPL', -1, 100, '2024-01-01', '2024-01-01')`)
	assert.Error(t, err)
}

func TestWithTransaction_CommitsOnSuccess(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate())

	err := WithTransaction(db.Conn(), func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO positions (ticker, shares_owned, total_cost_basis, created_at, updated_at)
			VALUES ('AAPL', 10, 1000, '2024-01-01', '2024-01-01')`)
		return err
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM positions").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate())

	boom := errors.New("boom")
	err := WithTransaction(db.Conn(), func(tx *sql.Tx) error {
		_, execErr := tx.Exec(`INSERT INTO positions (ticker, shares_owned, total_cost_basis, created_at, updated_at)
			VALUES ('AAPL', 10, 1000, '2024-01-01', '2024-01-01')`)
		if execErr != nil {
			return execErr
		}
		return boom
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM positions").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestWithTransaction_RecoversFromPanic(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate())

	err := WithTransaction(db.Conn(), func(tx *sql.Tx) error {
		panic("unexpected")
	})
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate())
	assert.NoError(t, db.HealthCheck(context.Background()))
}

func TestGetStats(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate())

	stats, err := db.GetStats()
	require.NoError(t, err)
	assert.Greater(t, stats.PageCount, int64(0))
	assert.Greater(t, stats.PageSize, int64(0))
}
