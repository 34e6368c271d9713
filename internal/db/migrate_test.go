package db_test

import (
	"testing"

	"github.com/alexanderramin/workhub/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_CreatesSchema(t *testing.T) {
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	for _, table := range []string{"companies", "users", "projects", "project_members", "nodes", "history_events"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.Migrate(database))
	require.NoError(t, db.Migrate(database))
}

func TestOpenDB_OnDisk(t *testing.T) {
	path := t.TempDir() + "/nested/workhub.db"
	database, err := db.OpenDB(path)
	require.NoError(t, err)
	require.NoError(t, database.Close())

	reopened, err := db.OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })
}

func TestForeignKeysEnforced(t *testing.T) {
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(`INSERT INTO nodes (project_id, title, node_order, created_at, updated_at)
		VALUES (999, 'orphan', 1, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`)
	assert.Error(t, err)
}
