package domain

import "strings"

// Filter narrows a loaded list client-side.
type Filter struct {
	Search string
	Status ReservationStatus
}

// Apply keeps reservations whose name or email contains Search (case-insensitive) or whose phone
// contains it verbatim, and whose status equals Status when one is set.
func (f Filter) Apply(items []Reservation) []Reservation {
	query := strings.ToLower(strings.TrimSpace(f.Search))
	status := ReservationStatusUnknown
	if f.Status != ReservationStatusUnknown {
		status = NormalizeReservationStatus(string(f.Status))
	}

	result := make([]Reservation, 0, len(items))
	for _, item := range items {
		if query != "" && !matchesQuery(item, query) {
			continue
		}
		if status != ReservationStatusUnknown && item.Status != status {
			continue
		}
		result = append(result, item)
	}
	return result
}

func matchesQuery(item Reservation, query string) bool {
	return strings.Contains(strings.ToLower(item.CustomerName), query) ||
		strings.Contains(strings.ToLower(item.CustomerEmail), query) ||
		strings.Contains(item.CustomerPhone, query)
}
