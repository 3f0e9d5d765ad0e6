package port

import (
	"context"
	"errors"

	"reservationsClient/internal/modules/auth/domain"
)

// ErrKeyNotFound is returned by a SessionStore when the key holds no value.
var ErrKeyNotFound = errors.New("session key not found")

// SessionStore is the key-value persistence behind a session.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Authenticator exchanges credentials for a session.
type Authenticator interface {
	Authenticate(ctx context.Context, creds domain.Credentials) (domain.Session, error)
}
