package database

import (
	"context"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
)

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "app.db"))
	assert.NilError(t, err)
	defer db.Close()

	ctx := context.Background()
	assert.NilError(t, Migrate(ctx, db))
	assert.NilError(t, Migrate(ctx, db))

	var n int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'tasks')").Scan(&n)
	assert.NilError(t, err)
	assert.Equal(t, n, 2)
}

func TestForeignKeysEnforced(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "app.db"))
	assert.NilError(t, err)
	defer db.Close()
	assert.NilError(t, Migrate(context.Background(), db))

	_, err = db.Exec("INSERT INTO tasks (user_id, task) VALUES (?, ?)", 42, "orphan")
	assert.ErrorContains(t, err, "FOREIGN KEY")
}
