package credentials

import (
	"strings"
)

// DefaultAuthScheme is the bearer scheme expected on the Authorization header.
const DefaultAuthScheme = "Bearer"

// Guard resolves the caller identity from an inbound request's Authorization
// header. It holds no per-request state: the resolved claims are handed to the
// caller and live only as long as the request.
type Guard struct {
	validator TokenValidator
	scheme    string
	logger    Logger
}

type GuardOption func(*Guard)

// WithGuardScheme overrides the expected auth scheme.
func WithGuardScheme(scheme string) GuardOption {
	return func(g *Guard) {
		if scheme != "" {
			g.scheme = scheme
		}
	}
}

// WithGuardLogger overrides the guard's logger.
func WithGuardLogger(logger Logger) GuardOption {
	return func(g *Guard) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGuard returns a Guard delegating verification to the given validator.
func NewGuard(validator TokenValidator, opts ...GuardOption) *Guard {
	g := &Guard{
		validator: validator,
		scheme:    DefaultAuthScheme,
		logger:    defLogger{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authenticate extracts the bearer token from a raw Authorization header value
// and verifies it. A missing or malformed header yields ErrMissingToken;
// verification failures propagate from the validator as ErrTokenMalformed or
// ErrTokenExpired.
func (g *Guard) Authenticate(authorization string) (AuthClaims, error) {
	raw, err := BearerToken(authorization, g.scheme)
	if err != nil {
		return nil, err
	}

	claims, err := g.validator.Validate(raw)
	if err != nil {
		g.logger.Debug("Guard token validation failed", "error", err)
		return nil, err
	}

	return claims, nil
}

// BearerToken extracts the raw token from an Authorization header value of
// the form "<scheme> <token>". The scheme comparison is case insensitive.
func BearerToken(authorization, scheme string) (string, error) {
	if scheme == "" {
		scheme = DefaultAuthScheme
	}

	header := strings.TrimSpace(authorization)
	if header == "" {
		return "", ErrMissingToken
	}

	l := len(scheme)
	if len(header) <= l+1 || !strings.EqualFold(header[:l], scheme) {
		return "", ErrMissingToken
	}

	token := strings.TrimSpace(header[l:])
	if token == "" {
		return "", ErrMissingToken
	}

	return token, nil
}
