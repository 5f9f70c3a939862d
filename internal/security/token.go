package security

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lshigami/Cryptoquest/config"
)

// TokenManager issues and verifies the two token kinds used by the API:
// bearer access tokens (subject = user ID) and password-reset tokens
// (subject = email address). Both are HS256 JWTs signed with the same secret.
type TokenManager struct {
	secret          []byte
	accessTokenTTL  time.Duration
	resetTokenTTL   time.Duration
	signingMethod   jwt.SigningMethod
	validateOptions []jwt.ParserOption
}

func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{
		secret:         []byte(cfg.Auth.SecretKey),
		accessTokenTTL: time.Duration(cfg.Auth.AccessTokenExpireMinutes) * time.Minute,
		resetTokenTTL:  time.Duration(cfg.Auth.EmailResetTokenExpireHours) * time.Hour,
		signingMethod:  jwt.SigningMethodHS256,
		validateOptions: []jwt.ParserOption{
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		},
	}
}

// CreateAccessToken issues a bearer token for the given user ID.
func (m *TokenManager) CreateAccessToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(m.signingMethod, claims).SignedString(m.secret)
}

// ParseAccessToken verifies the token and returns the user ID it was issued for.
func (m *TokenManager) ParseAccessToken(token string) (uint, error) {
	claims, err := m.parse(token)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid token subject %q: %w", claims.Subject, err)
	}
	return uint(id), nil
}

// CreatePasswordResetToken issues a token embedded in the reset-password link.
func (m *TokenManager) CreatePasswordResetToken(email string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(now.Add(m.resetTokenTTL)),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(m.signingMethod, claims).SignedString(m.secret)
}

// VerifyPasswordResetToken returns the email address the token was issued for.
func (m *TokenManager) VerifyPasswordResetToken(token string) (string, error) {
	claims, err := m.parse(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (m *TokenManager) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, m.validateOptions...)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
