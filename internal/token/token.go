// Package token issues and validates the signed bearer tokens used for
// authentication. Tokens are self-contained HS256 JWTs carrying the
// user's email as subject plus issued-at and expiry claims; validity is
// purely signature plus expiry, with no server-side state.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates a token that failed signature or time checks.
var ErrInvalidToken = errors.New("invalid token")

// Service signs and validates tokens with a process-wide secret key.
// The key is injected at construction and never leaves this package.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewService creates a token Service.
// Access and refresh lifetimes are independently configurable.
func NewService(secret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccess signs a short-lived access token for the subject.
func (s *Service) IssueAccess(subject string) (string, error) {
	return s.issue(subject, s.accessTTL)
}

// IssueRefresh signs a long-lived refresh token for the subject.
func (s *Service) IssueRefresh(subject string) (string, error) {
	return s.issue(subject, s.refreshTTL)
}

// AccessTTL returns the configured access token lifetime.
func (s *Service) AccessTTL() time.Duration {
	return s.accessTTL
}

// RefreshTTL returns the configured refresh token lifetime.
func (s *Service) RefreshTTL() time.Duration {
	return s.refreshTTL
}

func (s *Service) issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Validate reports whether the token's signature verifies against the
// current key and its expiry is still in the future. It never returns
// an error; malformed input is simply invalid.
func (s *Service) Validate(tokenString string) bool {
	_, err := s.parse(tokenString)
	return err == nil
}

// Subject extracts the subject claim from a token.
// Returns ErrInvalidToken for tokens that do not validate; callers are
// expected to call Validate first.
func (s *Service) Subject(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (s *Service) parse(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
