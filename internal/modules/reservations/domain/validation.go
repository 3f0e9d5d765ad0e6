package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"reservationsClient/internal/shared/dates"
)

const DefaultMaxGuests = 20

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	timePattern  = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// ValidateEmail reports whether email has the local@domain.tld shape.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone counts digits only, so separators and a leading + are accepted.
func ValidatePhone(phone string) bool {
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 10
}

func ValidateName(name string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(name)) >= 2
}

// ValidateDate reports whether date parses to a calendar day that is not before now's day.
func ValidateDate(date string, now time.Time) bool {
	if strings.TrimSpace(date) == "" {
		return false
	}
	parsed, err := dates.Parse(date)
	if err != nil {
		return false
	}
	return !dates.IsDateInPast(parsed, now)
}

// ValidateTime requires a zero-padded 24-hour HH:MM clock.
func ValidateTime(clock string) bool {
	return timePattern.MatchString(clock)
}

func ValidateGuestCount(count, maxGuests int) bool {
	return count > 0 && count <= maxGuests
}

func EmailError(email string) string {
	if strings.TrimSpace(email) == "" {
		return "Email is required"
	}
	if !ValidateEmail(email) {
		return "Please enter a valid email address"
	}
	return ""
}

func PhoneError(phone string) string {
	if strings.TrimSpace(phone) == "" {
		return "Phone number is required"
	}
	if !ValidatePhone(phone) {
		return "Please enter a valid phone number (at least 10 digits)"
	}
	return ""
}

func NameError(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required"
	}
	if !ValidateName(name) {
		return "Name must be at least 2 characters long"
	}
	return ""
}

func DateError(date string, now time.Time) string {
	if date == "" {
		return "Date is required"
	}
	if !ValidateDate(date, now) {
		return "Date cannot be in the past"
	}
	return ""
}

func TimeError(clock string) string {
	if clock == "" {
		return "Time is required"
	}
	if !ValidateTime(clock) {
		return "Please enter a valid time"
	}
	return ""
}

// GuestCountError uses DefaultMaxGuests; Rules carries the configured maximum.
func GuestCountError(count int) string {
	return guestCountError(count, DefaultMaxGuests)
}

func guestCountError(count, maxGuests int) string {
	if count <= 0 {
		return "Number of guests is required"
	}
	if !ValidateGuestCount(count, maxGuests) {
		return fmt.Sprintf("Number of guests must be between 1 and %d", maxGuests)
	}
	return ""
}

// FieldErrors maps a request field to its first failing message.
type FieldErrors map[string]string

func (f FieldErrors) add(field, message string) {
	if message != "" {
		f[field] = message
	}
}

// Valid reports whether no field failed.
func (f FieldErrors) Valid() bool {
	return len(f) == 0
}

// Rules binds the validators to a configured guest maximum and a clock.
type Rules struct {
	MaxGuests int
	Now       func() time.Time
}

// NewRules returns Rules using the wall clock.
func NewRules(maxGuests int) Rules {
	if maxGuests <= 0 {
		maxGuests = DefaultMaxGuests
	}
	return Rules{MaxGuests: maxGuests, Now: time.Now}
}

func (r Rules) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r Rules) maxGuests() int {
	if r.MaxGuests <= 0 {
		return DefaultMaxGuests
	}
	return r.MaxGuests
}

// GuestCountError applies the configured maximum.
func (r Rules) GuestCountError(count int) string {
	return guestCountError(count, r.maxGuests())
}

// ValidateCreate returns the field errors of a create form; an empty result means valid.
func (r Rules) ValidateCreate(req CreateReservationRequest) FieldErrors {
	errs := FieldErrors{}
	errs.add("customerName", NameError(req.CustomerName))
	errs.add("customerEmail", EmailError(req.CustomerEmail))
	errs.add("customerPhone", PhoneError(req.CustomerPhone))
	errs.add("reservationDate", DateError(req.ReservationDate, r.now()))
	errs.add("reservationTime", TimeError(req.ReservationTime))
	errs.add("numberOfGuests", r.GuestCountError(req.NumberOfGuests))
	return errs
}

// ValidateUpdate is ValidateCreate plus a known status.
func (r Rules) ValidateUpdate(req UpdateReservationRequest) FieldErrors {
	errs := r.ValidateCreate(req.CreateReservationRequest)
	if !NormalizeReservationStatus(string(req.Status)).Known() {
		errs.add("status", "Please select a valid status")
	}
	return errs
}
