package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "mediaflow/errors"
)

// TokenProvider supplies the bearer credential attached to every backend
// call. Credentials are always injected explicitly; nothing in this module
// reads tokens from process-wide storage.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken wraps a caller-supplied JWT. Before handing the token out it
// checks the embedded expiry so a stale credential fails fast instead of
// producing a 401 halfway through a multipart session.
type StaticToken struct {
	raw    string
	claims jwt.RegisteredClaims
}

// NewStaticToken parses the token claims without verifying the signature.
// The client has no signing key; verification is the backend's job. Only the
// expiry is inspected here.
func NewStaticToken(raw string) (*StaticToken, error) {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return nil, fmt.Errorf("malformed bearer token: %w", err)
	}
	return &StaticToken{raw: raw, claims: claims}, nil
}

func (t *StaticToken) Token(_ context.Context) (string, error) {
	if t.claims.ExpiresAt != nil && time.Now().After(t.claims.ExpiresAt.Time) {
		return "", apperrors.ErrTokenExpired
	}
	return t.raw, nil
}

// ExpiresIn reports how long the token remains valid, or zero when the token
// carries no expiry claim.
func (t *StaticToken) ExpiresIn() time.Duration {
	if t.claims.ExpiresAt == nil {
		return 0
	}
	return time.Until(t.claims.ExpiresAt.Time)
}

// OpaqueToken passes a non-JWT credential through untouched, for backends
// using API keys instead of JWTs.
type OpaqueToken string

func (t OpaqueToken) Token(_ context.Context) (string, error) {
	return string(t), nil
}
