package services

import (
	"context"
	"testing"

	"gotest.tools/v3/assert"
)

func TestCreateUserDuplicate(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db)
	ctx := context.Background()

	id, err := users.CreateUser(ctx, "alice", "hash")
	assert.NilError(t, err)
	assert.Assert(t, id > 0)

	_, err = users.CreateUser(ctx, "alice", "other")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	assert.Equal(t, countRows(t, db, "users"), 1)
}

func TestGetUser(t *testing.T) {
	users := NewUserService(newTestDB(t))
	ctx := context.Background()

	id, err := users.CreateUser(ctx, "Bob", "hash")
	assert.NilError(t, err)

	u, err := users.GetUserByUsername(ctx, "Bob")
	assert.NilError(t, err)
	assert.Equal(t, u.ID, id)
	assert.Equal(t, u.PasswordHash, "hash")

	// usernames are case-sensitive
	_, err = users.GetUserByUsername(ctx, "bob")
	assert.ErrorIs(t, err, ErrUserNotFound)

	u, err = users.GetUserByID(ctx, id)
	assert.NilError(t, err)
	assert.Equal(t, u.Username, "Bob")
	assert.Equal(t, u.PasswordHash, "")

	_, err = users.GetUserByID(ctx, id+100)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
