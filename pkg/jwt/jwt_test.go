package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessSecret  = "test-access-secret-key-for-testing-purposes"
	testRefreshSecret = "test-refresh-secret-key-for-testing-purposes"
)

func newTestService() *Service {
	return NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
}

func TestGenerateAccessToken(t *testing.T) {
	service := newTestService()

	token, err := service.GenerateAccessToken(42, "ayse@example.com", "user")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.AccountID)
	assert.Equal(t, "ayse@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, "42", claims.Subject)
}

func TestGenerateRefreshToken(t *testing.T) {
	service := newTestService()

	token, err := service.GenerateRefreshToken(42, "ayse@example.com", "user")
	require.NoError(t, err)

	claims, err := service.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.AccountID)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestTokenTypeMismatch(t *testing.T) {
	service := newTestService()

	refresh, err := service.GenerateRefreshToken(42, "ayse@example.com", "user")
	require.NoError(t, err)

	// A refresh token must not pass as an access token
	_, err = service.ValidateAccessToken(refresh)
	assert.Error(t, err)

	access, err := service.GenerateAccessToken(42, "ayse@example.com", "user")
	require.NoError(t, err)

	_, err = service.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestValidateWithWrongSecret(t *testing.T) {
	service := newTestService()
	other := NewService("different-secret", "different-refresh-secret", time.Hour, 24*time.Hour)

	token, err := service.GenerateAccessToken(42, "ayse@example.com", "user")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, -time.Minute, 24*time.Hour)

	token, err := service.GenerateAccessToken(42, "ayse@example.com", "user")
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)
	assert.Error(t, err)
	assert.True(t, IsExpiredError(err))
}

func TestIsExpiredError(t *testing.T) {
	service := newTestService()

	// A malformed token fails validation but is not "expired"
	_, err := service.ValidateAccessToken("not-a-token")
	require.Error(t, err)
	assert.False(t, IsExpiredError(err))

	assert.False(t, IsExpiredError(nil))
}

func TestExtractClaims(t *testing.T) {
	service := newTestService()

	token, err := service.GenerateAccessToken(42, "ayse@example.com", "admin")
	require.NoError(t, err)

	claims, err := service.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.AccountID)
	assert.Equal(t, "admin", claims.Role)

	_, err = service.ExtractClaims("garbage")
	assert.Error(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	service := newTestService()

	_, err := service.ValidateAccessToken("not.a.token")
	assert.Error(t, err)

	_, err = service.ValidateAccessToken("")
	assert.Error(t, err)
}
