package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"reservationsClient/internal/modules/auth/application/port"
	"reservationsClient/internal/modules/auth/domain"
	"reservationsClient/internal/shared/auth"
)

const (
	DefaultTokenKey = "authToken"
	DefaultUserKey  = "currentUser"
)

// SessionManager owns the persisted session: it logs in, validates the token expiry lazily and
// produces the outbound auth header.
type SessionManager struct {
	store         port.SessionStore
	authenticator port.Authenticator
	decoder       auth.TokenDecoder
	tokenKey      string
	userKey       string
	now           func() time.Time

	mu      sync.Mutex
	lastErr string
}

// SessionOption customizes a SessionManager.
type SessionOption func(*SessionManager)

// WithStorageKeys overrides the token and user keys; blank values keep the defaults.
func WithStorageKeys(tokenKey, userKey string) SessionOption {
	return func(m *SessionManager) {
		if trimmed := strings.TrimSpace(tokenKey); trimmed != "" {
			m.tokenKey = trimmed
		}
		if trimmed := strings.TrimSpace(userKey); trimmed != "" {
			m.userKey = trimmed
		}
	}
}

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) SessionOption {
	return func(m *SessionManager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithDecoder replaces the unverified JWT decoder.
func WithDecoder(decoder auth.TokenDecoder) SessionOption {
	return func(m *SessionManager) {
		if decoder != nil {
			m.decoder = decoder
		}
	}
}

func NewSessionManager(store port.SessionStore, authenticator port.Authenticator, opts ...SessionOption) *SessionManager {
	m := &SessionManager{
		store:         store,
		authenticator: authenticator,
		decoder:       auth.NewUnverifiedDecoder(),
		tokenKey:      DefaultTokenKey,
		userKey:       DefaultUserKey,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login authenticates and persists the token and user.
func (m *SessionManager) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	m.setError("")

	session, err := m.authenticator.Authenticate(ctx, creds)
	if err != nil {
		m.setError(err.Error())
		slog.Warn("login failed", slog.String("email", creds.Email), slog.Any("error", err))
		return domain.Session{}, err
	}

	userJSON, err := json.Marshal(session.User)
	if err != nil {
		return domain.Session{}, fmt.Errorf("encode user: %w", err)
	}
	if err := m.store.Set(ctx, m.tokenKey, session.Token); err != nil {
		m.setError(err.Error())
		return domain.Session{}, fmt.Errorf("store token: %w", err)
	}
	if err := m.store.Set(ctx, m.userKey, string(userJSON)); err != nil {
		m.setError(err.Error())
		m.forceLogout(ctx)
		return domain.Session{}, fmt.Errorf("store user: %w", err)
	}

	slog.Info("login succeeded", slog.String("user", session.User.UserName))
	return session, nil
}

// Logout clears both keys. Missing keys are not an error, so repeated calls are harmless.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.setError("")
	var errs []error
	for _, key := range []string{m.tokenKey, m.userKey} {
		if err := m.store.Delete(ctx, key); err != nil && !errors.Is(err, port.ErrKeyNotFound) {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// Check validates the stored token. An expired or undecodable token forces a logout and is
// reported as SessionExpired once; the next check sees SessionAnonymous.
func (m *SessionManager) Check(ctx context.Context) domain.SessionState {
	token := m.token(ctx)
	if token == "" {
		return domain.SessionAnonymous
	}

	claims, err := m.decoder.Decode(token)
	if err != nil {
		slog.Warn("session token undecodable, logging out", slog.Any("error", err))
		m.forceLogout(ctx)
		return domain.SessionExpired
	}
	if claims.Expired(m.now()) {
		slog.Info("session token expired, logging out")
		m.forceLogout(ctx)
		return domain.SessionExpired
	}
	return domain.SessionAuthenticated
}

func (m *SessionManager) IsAuthenticated(ctx context.Context) bool {
	return m.Check(ctx) == domain.SessionAuthenticated
}

// AuthHeader returns the bearer header for the stored token, or an empty header without one.
// A decodable token that has expired is logged out and yields an empty header; an undecodable
// token is still sent and left for the backend to reject.
func (m *SessionManager) AuthHeader(ctx context.Context) http.Header {
	token := m.token(ctx)
	if token == "" {
		return http.Header{}
	}
	if claims, err := m.decoder.Decode(token); err == nil && claims.Expired(m.now()) {
		slog.Info("session token expired before request, logging out")
		m.forceLogout(ctx)
		return http.Header{}
	}
	return auth.BearerHeader(token)
}

// InitializeAuth re-validates a persisted session at startup and clears it when invalid.
func (m *SessionManager) InitializeAuth(ctx context.Context) domain.SessionState {
	state := m.Check(ctx)
	if state != domain.SessionAuthenticated {
		m.forceLogout(ctx)
	}
	slog.Info("session initialized", slog.String("state", string(state)))
	return state
}

// CurrentUser returns the stored user of an authenticated session.
func (m *SessionManager) CurrentUser(ctx context.Context) (*domain.User, bool) {
	if !m.IsAuthenticated(ctx) {
		return nil, false
	}
	raw, err := m.store.Get(ctx, m.userKey)
	if err != nil || strings.TrimSpace(raw) == "" {
		return nil, false
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		slog.Warn("stored user unreadable", slog.Any("error", err))
		return nil, false
	}
	return &user, true
}

func (m *SessionManager) Permissions(ctx context.Context) domain.Permissions {
	return domain.PermissionsFor(m.IsAuthenticated(ctx))
}

func (m *SessionManager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *SessionManager) ClearError() {
	m.setError("")
}

func (m *SessionManager) setError(msg string) {
	m.mu.Lock()
	m.lastErr = msg
	m.mu.Unlock()
}

func (m *SessionManager) token(ctx context.Context) string {
	token, err := m.store.Get(ctx, m.tokenKey)
	if err != nil {
		if !errors.Is(err, port.ErrKeyNotFound) {
			slog.Warn("session token read failed", slog.Any("error", err))
		}
		return ""
	}
	return strings.TrimSpace(token)
}

func (m *SessionManager) forceLogout(ctx context.Context) {
	for _, key := range []string{m.tokenKey, m.userKey} {
		if err := m.store.Delete(ctx, key); err != nil && !errors.Is(err, port.ErrKeyNotFound) {
			slog.Warn("session clear failed", slog.String("key", key), slog.Any("error", err))
		}
	}
}
