package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"settings", "unit_progress", "checklist_items"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_StatusCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO unit_progress (day, status, updated_at) VALUES (1, 'Blocked', 'now')`)
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO unit_progress (day, status, updated_at) VALUES (1, 'In Progress', 'now')`)
	assert.NoError(t, err)
}

func TestMigrate_ChecklistCascadesWithProgress(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO unit_progress (day, status, updated_at) VALUES (3, 'Done', 'now')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO checklist_items (day, item_id, position, text, done) VALUES (3, 'd3-1', 0, 'x', 1)`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM unit_progress WHERE day = 3`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM checklist_items`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "roadmap.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}
