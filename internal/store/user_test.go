package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rishi-Dave/memoirAI/internal/domain"
)

func testUser(userID, email string) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:           userID,
		Email:        email,
		PasswordHash: "hashed_password",
		Preferences:  domain.DefaultPreferences(),
		IsActive:     true,
		CreatedAt:    now,
	}
}

func TestCreateUser(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	user := testUser("user-test123", "test@example.com")

	err := store.CreateUser(ctx, user)
	require.NoError(t, err)

	// Verify user can be retrieved
	retrieved, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)
	assert.Equal(t, user.Email, retrieved.Email)
	assert.Equal(t, domain.DefaultTone, retrieved.Preferences.DefaultTone)
}

func TestCreateUser_DuplicateID(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	err := store.CreateUser(ctx, testUser("user-test123", "test@example.com"))
	require.NoError(t, err)

	err = store.CreateUser(ctx, testUser("user-test123", "different@example.com"))
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	err := store.CreateUser(ctx, testUser("user-1", "test@example.com"))
	require.NoError(t, err)

	// Same email, different case, still a duplicate.
	err = store.CreateUser(ctx, testUser("user-2", "TEST@Example.com"))
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestGetUser_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.GetUser(context.Background(), "no-such-user")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserByEmail(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	user := testUser("user-1", "lookup@example.com")
	require.NoError(t, store.CreateUser(ctx, user))

	retrieved, err := store.GetUserByEmail(ctx, "  LOOKUP@example.com ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)

	_, err = store.GetUserByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUser_EmailIndexMoves(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	user := testUser("user-1", "old@example.com")
	require.NoError(t, store.CreateUser(ctx, user))

	user.Email = "new@example.com"
	require.NoError(t, store.UpdateUser(ctx, user))

	retrieved, err := store.GetUserByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)

	_, err = store.GetUserByEmail(ctx, "old@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdjustEntryCount(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	user := testUser("user-1", "count@example.com")
	require.NoError(t, store.CreateUser(ctx, user))

	require.NoError(t, store.AdjustEntryCount(ctx, user.ID, 1))
	require.NoError(t, store.AdjustEntryCount(ctx, user.ID, 1))

	retrieved, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, retrieved.TotalEntries)
}

func TestAdjustEntryCount_FloorsAtZero(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	user := testUser("user-1", "floor@example.com")
	require.NoError(t, store.CreateUser(ctx, user))

	require.NoError(t, store.AdjustEntryCount(ctx, user.ID, -3))

	retrieved, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, retrieved.TotalEntries)
}

func TestAdjustEntryCount_MissingUser(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.AdjustEntryCount(context.Background(), "no-such-user", 1)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestTouchLastLogin(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	user := testUser("user-1", "login@example.com")
	require.NoError(t, store.CreateUser(ctx, user))

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.TouchLastLogin(ctx, user.ID, at))

	retrieved, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, retrieved.LastLogin.Equal(at))
}
