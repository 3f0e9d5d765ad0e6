package httputil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

type SignupForm struct {
	Email string `json:"email" validate:"notblank"`
	Seats int    `json:"seats"`
}

type wrappedForm struct {
	SignupForm
	Note string `json:"note" validate:"required"`
}

func newTestValidator() *RequestValidator {
	v := NewRequestValidator().Message("email", "notblank", "Email is required")
	RegisterStructRule(v, func(form SignupForm) map[string]string {
		if form.Seats > 4 {
			return map[string]string{"seats": "Too many seats"}
		}
		return nil
	})
	return v
}

func TestRequestValidatorMessages(t *testing.T) {
	v := newTestValidator()

	if err := v.Validate(&SignupForm{Email: "a@b.co", Seats: 2}); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}

	err := v.Validate(&SignupForm{Email: "   ", Seats: 9})
	var invalid *ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := invalid.Fields["email"]; got != "Email is required" {
		t.Fatalf("expected email message, got %q", got)
	}
	if got := invalid.Fields["seats"]; got != "Too many seats" {
		t.Fatalf("expected struct rule message, got %q", got)
	}
}

func TestRequestValidatorDefaultMessageAndEmbeddedRules(t *testing.T) {
	err := newTestValidator().Validate(&wrappedForm{SignupForm: SignupForm{Email: "a@b.co", Seats: 5}})
	var invalid *ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := invalid.Fields["note"]; got != "note is invalid" {
		t.Fatalf("expected default message, got %q", got)
	}
	if got := invalid.Fields["seats"]; got != "Too many seats" {
		t.Fatalf("expected embedded struct rule to run, got %q", got)
	}
}

func TestRespondInvalid(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}")), rec)

	if err := RespondInvalid(c, &ValidationError{Fields: map[string]string{"email": "Email is required"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"email":"Email is required"`) {
		t.Fatalf("expected field message in body, got %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	if err := RespondInvalid(c, errors.New("boom")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
