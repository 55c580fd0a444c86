package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rishi-Dave/memoirAI/internal/domain"
	domainerrors "github.com/Rishi-Dave/memoirAI/internal/errors"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	return NewUserService(newTestStore(t), nil)
}

func TestRegister(t *testing.T) {
	users := newUserService(t)

	user, err := users.Register(context.Background(), RegisterRequest{
		Email:    "new@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Empty(t, user.PasswordHash, "credential must not leave the service")
	assert.True(t, user.IsActive)
	assert.Equal(t, domain.ToneHeartwarming, user.Preferences.DefaultTone)
	assert.Equal(t, domain.PrivacyPrivate, user.Preferences.PrivacySettings)
	assert.True(t, user.Preferences.NotificationsEnabled)
	assert.Equal(t, 0, user.TotalEntries)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newUserService(t)
	ctx := context.Background()

	_, err := users.Register(ctx, RegisterRequest{Email: "dup@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = users.Register(ctx, RegisterRequest{Email: "DUP@example.com", Password: "password456"})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestRegister_Validation(t *testing.T) {
	users := newUserService(t)
	ctx := context.Background()

	_, err := users.Register(ctx, RegisterRequest{Email: "not-an-email", Password: "password123"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = users.Register(ctx, RegisterRequest{Email: "ok@example.com", Password: "short"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestLogin(t *testing.T) {
	users := newUserService(t)
	ctx := context.Background()

	registered, err := users.Register(ctx, RegisterRequest{Email: "login@example.com", Password: "password123"})
	require.NoError(t, err)

	user, err := users.Login(ctx, LoginRequest{Email: "login@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)
	assert.False(t, user.LastLogin.IsZero())
}

func TestLogin_WrongPassword(t *testing.T) {
	users := newUserService(t)
	ctx := context.Background()

	_, err := users.Register(ctx, RegisterRequest{Email: "login@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = users.Login(ctx, LoginRequest{Email: "login@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailDoesNotLeak(t *testing.T) {
	users := newUserService(t)

	_, err := users.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "password123"})
	// Same error as a wrong password.
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	users := newUserService(t)
	ctx := context.Background()

	user, err := users.Register(ctx, RegisterRequest{Email: "rotate@example.com", Password: "password123"})
	require.NoError(t, err)

	err = users.ChangePassword(ctx, ChangePasswordRequest{
		UserID:          user.ID,
		CurrentPassword: "password123",
		NewPassword:     "new-password-456",
	})
	require.NoError(t, err)

	// Old credential rejected, new one accepted.
	_, err = users.Login(ctx, LoginRequest{Email: "rotate@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = users.Login(ctx, LoginRequest{Email: "rotate@example.com", Password: "new-password-456"})
	assert.NoError(t, err)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	users := newUserService(t)
	ctx := context.Background()

	user, err := users.Register(ctx, RegisterRequest{Email: "rotate@example.com", Password: "password123"})
	require.NoError(t, err)

	err = users.ChangePassword(ctx, ChangePasswordRequest{
		UserID:          user.ID,
		CurrentPassword: "wrong",
		NewPassword:     "new-password-456",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUpdatePreferences(t *testing.T) {
	users := newUserService(t)
	ctx := context.Background()

	user, err := users.Register(ctx, RegisterRequest{Email: "prefs@example.com", Password: "password123"})
	require.NoError(t, err)

	updated, err := users.UpdatePreferences(ctx, user.ID, domain.Preferences{
		DefaultTone:     domain.ToneWhimsical,
		PrivacySettings: domain.PrivacyShared,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ToneWhimsical, updated.Preferences.DefaultTone)

	_, err = users.UpdatePreferences(ctx, user.ID, domain.Preferences{DefaultTone: "gritty"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}
