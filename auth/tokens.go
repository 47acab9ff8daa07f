package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/user/inkstream-go/apperror"
	"github.com/user/inkstream-go/config"
)

// Claims is the identity payload embedded in a session token.
type Claims struct {
	UserID   uuid.UUID `json:"id"`
	Username string    `json:"username"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies session tokens. It is a pure function of
// the shared secret and the configured lifetime; nothing is persisted.
type TokenService struct {
	secret   []byte
	duration time.Duration
}

// NewTokenService creates a TokenService from the auth configuration.
func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{
		secret:   []byte(cfg.JWTSecret),
		duration: cfg.TokenDuration,
	}
}

// Duration returns the configured token lifetime.
func (t *TokenService) Duration() time.Duration {
	return t.duration
}

// Sign issues a token carrying the given identity. The expiry is explicit and
// enforced at verification.
func (t *TokenService) Sign(userID uuid.UUID, username string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(t.duration)
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "inkstream",
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a token string, rejecting absent, malformed,
// tampered and expired tokens. The returned error is always an AuthError so
// callers surface it as a plain 401 rejection.
func (t *TokenService) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperror.NewAuthError("missing token", nil)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, apperror.NewAuthError("invalid token", err)
	}
	if !token.Valid {
		return nil, apperror.NewAuthError("invalid token", nil)
	}
	if claims.UserID == uuid.Nil || claims.Username == "" {
		return nil, apperror.NewAuthError("invalid token: identity claims missing", nil)
	}

	return claims, nil
}
