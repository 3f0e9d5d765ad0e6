package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims are the registered claims the client reads from backend tokens.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenDecoder reads claims from a bearer token without verifying its signature.
// Verification is the backend's job; the client only needs the expiry.
type TokenDecoder interface {
	Decode(token string) (*Claims, error)
}

// UnverifiedDecoder decodes JWT payloads with jwt.Parser.ParseUnverified.
type UnverifiedDecoder struct {
	parser *jwt.Parser
}

func NewUnverifiedDecoder() *UnverifiedDecoder {
	return &UnverifiedDecoder{parser: jwt.NewParser()}
}

func (d *UnverifiedDecoder) Decode(token string) (*Claims, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, ErrMissingToken
	}
	claims := &Claims{}
	if _, _, err := d.parser.ParseUnverified(trimmed, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// ExpiresAtTime returns the exp claim and whether the token carries one.
func (c *Claims) ExpiresAtTime() (time.Time, bool) {
	if c == nil || c.ExpiresAt == nil {
		return time.Time{}, false
	}
	return c.ExpiresAt.Time, true
}

// Expired reports whether the token expiry is at or before now. Tokens without exp never expire.
func (c *Claims) Expired(now time.Time) bool {
	exp, ok := c.ExpiresAtTime()
	if !ok {
		return false
	}
	return !exp.After(now)
}

var _ TokenDecoder = (*UnverifiedDecoder)(nil)
