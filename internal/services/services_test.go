package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/isdelr/tasklist/internal/database"
	"golang.org/x/crypto/bcrypt"
	"gotest.tools/v3/assert"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "app.db"))
	assert.NilError(t, err)
	t.Cleanup(func() { db.Close() })
	assert.NilError(t, database.Migrate(context.Background(), db))
	return db
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	assert.NilError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func newAuth(db *sql.DB) *AuthService {
	return NewAuthService(NewUserService(db), bcrypt.MinCost)
}
