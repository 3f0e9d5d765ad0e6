package normalization

import "strings"

// entityAliases maps the entity spellings seen in backend events to their canonical form.
var entityAliases = map[string]string{
	"":        "",
	"-":       "",
	"default": "",

	"reservation":  "reservations",
	"reservations": "reservations",
	"booking":      "reservations",
	"bookings":     "reservations",

	"account":  "users",
	"accounts": "users",
	"user":     "users",
	"users":    "users",
	"auth":     "users",
}

// NormalizeEntity converts entity names to their canonical plural form.
//
// Example:
//
//	NormalizeEntity("Reservation") => "reservations"
//	NormalizeEntity("Booking") => "reservations"
func NormalizeEntity(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	normalized := strings.ReplaceAll(trimmed, "_", "-")

	if canonical, found := entityAliases[normalized]; found {
		return canonical
	}
	return normalized
}

// IsReservationEntity reports whether raw names the reservation resource.
func IsReservationEntity(raw string) bool {
	return NormalizeEntity(raw) == "reservations"
}
