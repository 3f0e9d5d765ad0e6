package domain

import (
	"strings"
	"testing"
	"time"
)

var fixedNow = time.Date(2024, time.June, 15, 18, 30, 0, 0, time.UTC)

func fixedRules() Rules {
	return Rules{MaxGuests: 20, Now: func() time.Time { return fixedNow }}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"john@example.com", "a.b+c@sub.domain.org"}
	invalid := []string{"", "john", "john@example", "john @example.com", "@example.com"}

	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Fatalf("expected %q to be valid", email)
		}
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Fatalf("expected %q to be invalid", email)
		}
	}
}

func TestValidatePhoneCountsDigitsOnly(t *testing.T) {
	cases := map[string]bool{
		"1234567890":       true,
		"(123) 456-7890":   true,
		"+1 123 456 78 90": true,
		"123-456-789":      false,
		"phone":            false,
	}
	for phone, expected := range cases {
		if got := ValidatePhone(phone); got != expected {
			t.Fatalf("ValidatePhone(%q) expected %v got %v", phone, expected, got)
		}
	}
}

func TestValidateTime(t *testing.T) {
	cases := map[string]bool{
		"00:00": true,
		"19:00": true,
		"23:59": true,
		"9:00":  false,
		"24:00": false,
		"12:60": false,
		"":      false,
	}
	for clock, expected := range cases {
		if got := ValidateTime(clock); got != expected {
			t.Fatalf("ValidateTime(%q) expected %v got %v", clock, expected, got)
		}
	}
}

func TestValidateDateAcceptsToday(t *testing.T) {
	if !ValidateDate("2024-06-15", fixedNow) {
		t.Fatal("today must be valid")
	}
	if ValidateDate("2024-06-14", fixedNow) {
		t.Fatal("yesterday must be invalid")
	}
	if !ValidateDate("2024-12-31T00:00:00Z", fixedNow) {
		t.Fatal("future timestamp must be valid")
	}
	if ValidateDate("not a date", fixedNow) {
		t.Fatal("garbage must be invalid")
	}
}

func TestMessageFunctions(t *testing.T) {
	cases := []struct {
		name     string
		got      string
		expected string
	}{
		{name: "email required", got: EmailError("  "), expected: "Email is required"},
		{name: "email format", got: EmailError("john"), expected: "Please enter a valid email address"},
		{name: "email ok", got: EmailError("john@example.com"), expected: ""},
		{name: "phone required", got: PhoneError(""), expected: "Phone number is required"},
		{name: "phone format", got: PhoneError("12345"), expected: "Please enter a valid phone number (at least 10 digits)"},
		{name: "name required", got: NameError(" "), expected: "Name is required"},
		{name: "name short", got: NameError(" J "), expected: "Name must be at least 2 characters long"},
		{name: "name ok", got: NameError("Jo"), expected: ""},
		{name: "date required", got: DateError("", fixedNow), expected: "Date is required"},
		{name: "date past", got: DateError("2020-01-01", fixedNow), expected: "Date cannot be in the past"},
		{name: "time required", got: TimeError(""), expected: "Time is required"},
		{name: "time format", got: TimeError("9:00"), expected: "Please enter a valid time"},
		{name: "guests required", got: GuestCountError(0), expected: "Number of guests is required"},
		{name: "guests negative", got: GuestCountError(-2), expected: "Number of guests is required"},
		{name: "guests ok", got: GuestCountError(5), expected: ""},
		{name: "guests at max", got: GuestCountError(20), expected: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, tc.got)
			}
		})
	}

	if msg := GuestCountError(21); !strings.Contains(msg, "between 1 and") {
		t.Fatalf("expected range message, got %q", msg)
	}
}

func TestRulesUseConfiguredMaximum(t *testing.T) {
	rules := Rules{MaxGuests: 8, Now: func() time.Time { return fixedNow }}

	if msg := rules.GuestCountError(9); msg != "Number of guests must be between 1 and 8" {
		t.Fatalf("unexpected message: %q", msg)
	}
	if msg := rules.GuestCountError(8); msg != "" {
		t.Fatalf("expected max to be valid, got %q", msg)
	}
}

func TestRulesValidateCreate(t *testing.T) {
	req := CreateReservationRequest{
		CustomerName:    "John Doe",
		CustomerEmail:   "john@example.com",
		CustomerPhone:   "1234567890",
		ReservationDate: "2024-12-31",
		ReservationTime: "19:00",
		NumberOfGuests:  4,
	}
	if errs := fixedRules().ValidateCreate(req); !errs.Valid() {
		t.Fatalf("expected valid request, got %v", errs)
	}

	req.CustomerEmail = "bad"
	req.NumberOfGuests = 0
	errs := fixedRules().ValidateCreate(req)
	if len(errs) != 2 {
		t.Fatalf("expected 2 field errors, got %v", errs)
	}
	if errs["customerEmail"] != "Please enter a valid email address" {
		t.Fatalf("unexpected email error: %q", errs["customerEmail"])
	}
	if errs["numberOfGuests"] != "Number of guests is required" {
		t.Fatalf("unexpected guests error: %q", errs["numberOfGuests"])
	}
}

func TestRulesValidateUpdateRequiresKnownStatus(t *testing.T) {
	req := UpdateReservationRequest{
		CreateReservationRequest: CreateReservationRequest{
			CustomerName:    "John Doe",
			CustomerEmail:   "john@example.com",
			CustomerPhone:   "1234567890",
			ReservationDate: "2024-12-31",
			ReservationTime: "19:00",
			NumberOfGuests:  4,
		},
		Status: "confirmed",
	}
	if errs := fixedRules().ValidateUpdate(req); !errs.Valid() {
		t.Fatalf("expected valid update, got %v", errs)
	}

	req.Status = "Seated"
	errs := fixedRules().ValidateUpdate(req)
	if errs["status"] != "Please select a valid status" {
		t.Fatalf("expected status error, got %v", errs)
	}
}
