package store

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmercadier/devfeed-be/internal/database"
	"github.com/lmercadier/devfeed-be/internal/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func TestUserStore_UniqueKeys(t *testing.T) {
	users := NewUserStore(newTestDB(t))

	alice, err := users.Insert(models.User{Name: "Alice", Email: "a@x.com", Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	require.NotZero(t, alice.ID)

	_, err = users.Insert(models.User{Name: "Other", Email: "a@x.com", Username: "other", PasswordHash: "h"})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	_, err = users.Insert(models.User{Name: "Other", Email: "o@x.com", Username: "alice", PasswordHash: "h"})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	byEmail, err := users.GetByEmail("a@x.com")
	require.NoError(t, err)
	byUsername, err := users.GetByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, byEmail.ID, byUsername.ID)

	_, err = users.GetByEmail("nobody@x.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestFollowStore_AtomicMembership(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db)
	themes := NewThemeStore(db)
	follows := NewFollowStore(db)

	alice, err := users.Insert(models.User{Name: "Alice", Email: "a@x.com", Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	tech, err := themes.Insert("Tech", "")
	require.NoError(t, err)

	require.NoError(t, follows.Add(alice.ID, tech.ID))
	require.NoError(t, follows.Add(alice.ID, tech.ID)) // duplicate add absorbed

	followed, err := follows.ThemesFor(alice.ID)
	require.NoError(t, err)
	require.Len(t, followed, 1)

	require.NoError(t, follows.Remove(alice.ID, tech.ID))
	require.NoError(t, follows.Remove(alice.ID, tech.ID)) // absent remove is a no-op

	followed, err = follows.ThemesFor(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, followed)
}
