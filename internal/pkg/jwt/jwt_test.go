package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uchiyama0208/nightbase-sub009/internal/domain/staff"
)

const testSecret = "test-secret-key-for-jwt"

func newTestService() Service {
	return NewJWTService(testSecret, "1h", "168h")
}

func TestGenerateAccessToken(t *testing.T) {
	svc := newTestService()

	token, expiresAt, err := svc.GenerateAccessToken("staff-1", "cast@example.com", "venue-1", staff.RoleCast)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateRefreshToken("staff-1")
	require.NoError(t, err)

	staffID, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", staffID)
}

func TestValidateRefreshTokenRejectsAccessToken(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateAccessToken("staff-1", "cast@example.com", "venue-1", staff.RoleCast)
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(token)
	assert.Error(t, err)
}

func TestValidateRefreshTokenRejectsGarbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateRefreshToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateRefreshTokenRejectsWrongSignature(t *testing.T) {
	other := NewJWTService("a-different-secret", "1h", "168h")
	token, _, err := other.GenerateRefreshToken("staff-1")
	require.NoError(t, err)

	svc := newTestService()
	_, err = svc.ValidateRefreshToken(token)
	assert.Error(t, err)
}

func TestStreamTokenRoundTrip(t *testing.T) {
	svc := newTestService()

	token, expiresIn, err := svc.GenerateStreamToken("venue-1")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	venueID, err := svc.ValidateStreamToken(token)
	require.NoError(t, err)
	assert.Equal(t, "venue-1", venueID)
}

func TestValidateStreamTokenRejectsRefreshToken(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateRefreshToken("staff-1")
	require.NoError(t, err)

	_, err = svc.ValidateStreamToken(token)
	assert.Error(t, err)
}

func TestTokenRevocation(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateRefreshToken("staff-1")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(token))
	svc.RevokeToken(token)
	assert.True(t, svc.IsTokenRevoked(token))
}
