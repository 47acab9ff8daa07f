package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/inkstream-go/apperror"
	"github.com/user/inkstream-go/config"
)

func newTestTokenService(duration time.Duration) *TokenService {
	return NewTokenService(config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenDuration: duration,
	})
}

func TestTokenServiceRoundTrip(t *testing.T) {
	tokens := newTestTokenService(time.Hour)
	userID := uuid.New()

	signed, expiresAt, err := tokens.Sign(userID, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestTokenServiceRejectsTamperedToken(t *testing.T) {
	tokens := newTestTokenService(time.Hour)

	signed, _, err := tokens.Sign(uuid.New(), "alice")
	require.NoError(t, err)

	// Flip the last signature character.
	last := signed[len(signed)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := signed[:len(signed)-1] + string(flipped)

	_, err = tokens.Verify(tampered)
	require.Error(t, err)
	assert.True(t, apperror.IsAuthError(err))
}

func TestTokenServiceRejectsExpiredToken(t *testing.T) {
	tokens := newTestTokenService(-time.Minute)

	signed, _, err := tokens.Sign(uuid.New(), "alice")
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	require.Error(t, err)
	assert.True(t, apperror.IsAuthError(err))
}

func TestTokenServiceRejectsForeignSecret(t *testing.T) {
	signed, _, err := newTestTokenService(time.Hour).Sign(uuid.New(), "alice")
	require.NoError(t, err)

	other := NewTokenService(config.AuthConfig{JWTSecret: "another-secret", TokenDuration: time.Hour})
	_, err = other.Verify(signed)
	require.Error(t, err)
	assert.True(t, apperror.IsAuthError(err))
}

func TestTokenServiceRejectsEmptyAndMalformedTokens(t *testing.T) {
	tokens := newTestTokenService(time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tokens.Verify(tok)
		require.Error(t, err, "token %q", tok)
		assert.True(t, apperror.IsAuthError(err))
	}
}
