// Package token issues and verifies the access and refresh JWTs.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind distinguishes access tokens from refresh tokens.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// ErrInvalidToken is returned for malformed, expired, wrongly signed or
// wrong-kind tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims represents JWT claims with token type and user ID.
type Claims struct {
	UserID    string `json:"user_id"`
	TokenType Kind   `json:"typ"`
	jwt.RegisteredClaims
}

// Service defines JWT token operations.
type Service interface {
	IssueAccessToken(userID string) (string, error)
	IssueRefreshToken(userID string) (string, error)
	Verify(tokenString string, kind Kind) (string, error)
	AccessExpiry() time.Duration
	RefreshExpiry() time.Duration
}

type jwtService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	now           func() time.Time
}

// NewJWTService creates a Service signing each token kind with its own secret.
func NewJWTService(accessSecret, refreshSecret string, accessExpiry, refreshExpiry time.Duration) Service {
	return &jwtService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		now:           time.Now,
	}
}

func (s *jwtService) IssueAccessToken(userID string) (string, error) {
	return s.issue(userID, KindAccess)
}

func (s *jwtService) IssueRefreshToken(userID string) (string, error) {
	return s.issue(userID, KindRefresh)
}

func (s *jwtService) AccessExpiry() time.Duration {
	return s.accessExpiry
}

func (s *jwtService) RefreshExpiry() time.Duration {
	return s.refreshExpiry
}

func (s *jwtService) issue(userID string, kind Kind) (string, error) {
	secret, expiry := s.keyFor(kind)
	now := s.now()

	claims := Claims{
		UserID:    userID,
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify checks signature, expiry and kind and returns the user ID.
func (s *jwtService) Verify(tokenString string, kind Kind) (string, error) {
	secret, _ := s.keyFor(kind)

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.TokenType != kind {
		return "", fmt.Errorf("%w: token type mismatch: %s", ErrInvalidToken, claims.TokenType)
	}
	if claims.UserID == "" {
		return "", fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}

	return claims.UserID, nil
}

func (s *jwtService) keyFor(kind Kind) ([]byte, time.Duration) {
	if kind == KindRefresh {
		return s.refreshSecret, s.refreshExpiry
	}
	return s.accessSecret, s.accessExpiry
}
