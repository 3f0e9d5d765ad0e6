package domain

import (
	"errors"
	"testing"
)

func TestNormalizeLoginResponse(t *testing.T) {
	cases := []struct {
		name     string
		payload  any
		expected Session
	}{
		{
			name:     "flat pascal case",
			payload:  map[string]any{"Id": "u-1", "UserName": "admin", "Email": "admin@example.com", "Token": "abc"},
			expected: Session{Token: "abc", User: User{ID: "u-1", UserName: "admin", Email: "admin@example.com"}},
		},
		{
			name:     "nested user",
			payload:  map[string]any{"token": "xyz", "user": map[string]any{"id": float64(9), "userName": "ana", "email": "ana@example.com"}},
			expected: Session{Token: "xyz", User: User{ID: "9", UserName: "ana", Email: "ana@example.com"}},
		},
		{
			name:     "data envelope",
			payload:  map[string]any{"data": map[string]any{"Token": "t", "Email": "e@example.com"}},
			expected: Session{Token: "t", User: User{Email: "e@example.com"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			session, err := NormalizeLoginResponse(tc.payload)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if session != tc.expected {
				t.Fatalf("expected %+v, got %+v", tc.expected, session)
			}
		})
	}
}

func TestNormalizeLoginResponseRequiresToken(t *testing.T) {
	for _, payload := range []any{nil, map[string]any{}, map[string]any{"Email": "x"}, []any{}} {
		if _, err := NormalizeLoginResponse(payload); !errors.Is(err, ErrMissingToken) {
			t.Fatalf("payload %v: expected ErrMissingToken, got %v", payload, err)
		}
	}
}

func TestPermissionsFor(t *testing.T) {
	anonymous := PermissionsFor(false)
	if !anonymous.CanView || anonymous.CanCreate || anonymous.CanEdit || anonymous.CanDelete {
		t.Fatalf("unexpected anonymous permissions: %+v", anonymous)
	}
	authenticated := PermissionsFor(true)
	if !authenticated.CanCreate || !authenticated.CanEdit || !authenticated.CanDelete {
		t.Fatalf("unexpected authenticated permissions: %+v", authenticated)
	}
}
