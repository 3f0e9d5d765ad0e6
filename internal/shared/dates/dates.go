// Package dates holds the calendar and clock helpers used to display and compare
// reservation dates. Everything here is pure: callers supply "now" where today matters.
package dates

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the wire and form layout of a calendar date.
	DateLayout = "2006-01-02"
	// ClockLayout is the 24-hour wire layout of a reservation time.
	ClockLayout = "15:04"

	displayDate     = "Jan 2, 2006"
	displayDateTime = "Jan 2, 2006, 03:04 PM"
	displayClock    = "3:04 PM"
)

var ErrInvalidClock = errors.New("invalid clock time")

// Parse accepts a YYYY-MM-DD calendar date or an RFC 3339 timestamp.
func Parse(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if t, err := time.Parse(DateLayout, trimmed); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, trimmed); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", trimmed); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("parse date %q: expected %s or RFC 3339", value, DateLayout)
}

// FormatDate renders t as "Jan 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format(displayDate)
}

// FormatDateTime renders the date with clock applied as "Jan 2, 2006, 07:00 PM".
// An empty clock keeps t's own time of day.
func FormatDateTime(t time.Time, clock string) (string, error) {
	if strings.TrimSpace(clock) != "" {
		hour, minute, err := parseClock(clock)
		if err != nil {
			return "", err
		}
		t = time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
	}
	return t.Format(displayDateTime), nil
}

// FormatTime converts a 24-hour "HH:MM" into a 12-hour clock with AM/PM.
func FormatTime(clock string) (string, error) {
	hour, minute, err := parseClock(clock)
	if err != nil {
		return "", err
	}
	return time.Date(2000, time.January, 1, hour, minute, 0, 0, time.UTC).Format(displayClock), nil
}

// IsDateInPast reports whether t falls on a calendar day strictly before now's day.
func IsDateInPast(t, now time.Time) bool {
	return civil(t).Before(civil(now))
}

// IsDateToday reports whether t falls on now's calendar day.
func IsDateToday(t, now time.Time) bool {
	return civil(t).Equal(civil(now))
}

// DifferenceInDays returns the absolute difference between a and b in days, rounded up.
func DifferenceInDays(a, b time.Time) int {
	diff := b.Sub(a)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// Today returns now's calendar day as YYYY-MM-DD.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// AddDays moves t by days calendar days; negative values subtract.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// civil strips the time of day, keeping the calendar day as seen in t's own location.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseClock(clock string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, clock)
	}
	return hour, minute, nil
}
