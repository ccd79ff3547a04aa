package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenManager(t *testing.T) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager("test-secret", 24*time.Hour, 168*time.Hour, 168*time.Hour)
	require.NoError(t, err)
	return tm
}

func TestNewTokenManager_EmptySecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour, time.Hour, time.Hour)
	require.Error(t, err)
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := newTestTokenManager(t)
	userID := uuid.New()

	token, expiresAt, err := tm.CreateAccessToken(userID, "a@b.c", "user", false)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "a@b.c", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestTokenManager_RememberMeExtendsTTL(t *testing.T) {
	tm := newTestTokenManager(t)

	_, short, err := tm.CreateAccessToken(uuid.New(), "a@b.c", "user", false)
	require.NoError(t, err)
	_, long, err := tm.CreateAccessToken(uuid.New(), "a@b.c", "user", true)
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().Add(168*time.Hour), long, time.Minute)
	assert.True(t, long.After(short))
}

func TestTokenManager_Expired(t *testing.T) {
	tm, err := NewTokenManager("test-secret", -time.Minute, time.Hour, time.Hour)
	require.NoError(t, err)

	token, _, err := tm.CreateAccessToken(uuid.New(), "a@b.c", "user", false)
	require.NoError(t, err)

	_, err = tm.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := newTestTokenManager(t)
	other, err := NewTokenManager("another-secret", time.Hour, time.Hour, time.Hour)
	require.NoError(t, err)

	token, _, err := tm.CreateAccessToken(uuid.New(), "a@b.c", "user", false)
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenManager_Malformed(t *testing.T) {
	tm := newTestTokenManager(t)

	_, err := tm.Validate("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenManager_ValidateRefresh(t *testing.T) {
	tm := newTestTokenManager(t)
	userID := uuid.New()

	refresh, _, err := tm.CreateRefreshToken(userID, "a@b.c", "user")
	require.NoError(t, err)

	claims, err := tm.ValidateRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)

	// an access token is not accepted on the refresh path
	access, _, err := tm.CreateAccessToken(userID, "a@b.c", "user", false)
	require.NoError(t, err)
	_, err = tm.ValidateRefresh(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
