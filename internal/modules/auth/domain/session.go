package domain

import (
	"errors"
	"strings"

	"reservationsClient/internal/shared/normalization"
)

var ErrMissingToken = errors.New("login response has no token")

// Credentials is the login body; the backend binds PascalCase keys.
type Credentials struct {
	Email    string `json:"Email"`
	Password string `json:"Password"`
}

// User is the account persisted next to the token.
type User struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
}

// Session pairs the opaque bearer token with its user.
type Session struct {
	Token string `json:"-"`
	User  User   `json:"user"`
}

// SessionState is the outcome of a session check.
type SessionState string

const (
	SessionAnonymous     SessionState = "anonymous"
	SessionAuthenticated SessionState = "authenticated"
	SessionExpired       SessionState = "expired"
)

// Permissions are the reservation actions the current session may take.
type Permissions struct {
	CanView   bool `json:"canView"`
	CanCreate bool `json:"canCreate"`
	CanEdit   bool `json:"canEdit"`
	CanDelete bool `json:"canDelete"`
}

// PermissionsFor grants view to everyone and mutations to authenticated sessions.
func PermissionsFor(authenticated bool) Permissions {
	return Permissions{
		CanView:   true,
		CanCreate: authenticated,
		CanEdit:   authenticated,
		CanDelete: authenticated,
	}
}

// NormalizeLoginResponse accepts the flat {Id, UserName, Email, Token} body as well as
// {token, user: {...}} and {data: {...}} variants.
func NormalizeLoginResponse(payload any) (Session, error) {
	raw := normalization.MapFromPayload(payload)
	if len(raw) == 0 {
		return Session{}, ErrMissingToken
	}

	token := normalization.StringField(raw, "Token", "accessToken", "jwt")
	if strings.TrimSpace(token) == "" {
		return Session{}, ErrMissingToken
	}

	userRaw := raw
	if nested, ok := normalization.Lookup(raw, "user"); ok {
		if nestedMap, ok := nested.(map[string]any); ok {
			userRaw = nestedMap
		}
	}

	return Session{
		Token: token,
		User: User{
			ID:       normalization.StringField(userRaw, "Id", "userId"),
			UserName: normalization.StringField(userRaw, "UserName", "name"),
			Email:    normalization.StringField(userRaw, "Email"),
		},
	}, nil
}
