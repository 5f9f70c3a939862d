package security

import (
	"testing"

	"github.com/lshigami/Cryptoquest/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenManager(secret string) *TokenManager {
	cfg := &config.Config{}
	cfg.Auth.SecretKey = secret
	cfg.Auth.AccessTokenExpireMinutes = 60
	cfg.Auth.EmailResetTokenExpireHours = 48
	return NewTokenManager(cfg)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tokens := newTestTokenManager("test-secret")

	token, err := tokens.CreateAccessToken(42)
	require.NoError(t, err)

	id, err := tokens.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestPasswordResetTokenRoundTrip(t *testing.T) {
	tokens := newTestTokenManager("test-secret")

	token, err := tokens.CreatePasswordResetToken("alice@example.com")
	require.NoError(t, err)

	email, err := tokens.VerifyPasswordResetToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email)
}

func TestTokenRejectedAcrossSecrets(t *testing.T) {
	issued, err := newTestTokenManager("secret-a").CreateAccessToken(42)
	require.NoError(t, err)

	_, err = newTestTokenManager("secret-b").ParseAccessToken(issued)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	tokens := newTestTokenManager("test-secret")

	_, err := tokens.ParseAccessToken("not.a.jwt")
	assert.Error(t, err)

	_, err = tokens.VerifyPasswordResetToken("")
	assert.Error(t, err)
}
