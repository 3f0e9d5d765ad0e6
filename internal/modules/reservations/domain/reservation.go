package domain

import (
	"errors"

	"reservationsClient/internal/shared/normalization"
)

var ErrMissingReservationID = errors.New("reservation payload has no id")

// Reservation is the canonical reservation record exposed to the gateway and the working set.
type Reservation struct {
	ID              int               `json:"id"`
	CustomerName    string            `json:"customerName"`
	CustomerEmail   string            `json:"customerEmail"`
	CustomerPhone   string            `json:"customerPhone"`
	ReservationDate string            `json:"reservationDate"`
	ReservationTime string            `json:"reservationTime"`
	NumberOfGuests  int               `json:"numberOfGuests"`
	Status          ReservationStatus `json:"status"`
	Notes           *string           `json:"notes,omitempty"`
	CreatedBy       string            `json:"createdBy,omitempty"`
	CreatedAt       string            `json:"createdAt"`
	UpdatedAt       string            `json:"updatedAt"`
}

// NormalizeReservation constructs a Reservation from a loosely typed map. Keys are matched
// case-insensitively, so PascalCase wire records and camelCase records resolve identically.
func NormalizeReservation(raw map[string]any) (Reservation, bool) {
	id := normalization.IntField(raw, "Id", "id", "reservationId")
	if id == 0 {
		return Reservation{}, false
	}

	reservation := Reservation{
		ID:              id,
		CustomerName:    normalization.StringField(raw, "CustomerName"),
		CustomerEmail:   normalization.StringField(raw, "CustomerEmail"),
		CustomerPhone:   normalization.StringField(raw, "CustomerPhone"),
		ReservationDate: normalization.StringField(raw, "ReservationDate"),
		ReservationTime: normalization.StringField(raw, "ReservationTime"),
		NumberOfGuests:  normalization.IntField(raw, "NumberOfGuests", "guests"),
		CreatedBy:       normalization.StringField(raw, "CreatedBy"),
		CreatedAt:       normalization.StringField(raw, "CreatedDate", "createdAt"),
		UpdatedAt:       normalization.StringField(raw, "UpdatedDate", "updatedAt"),
	}

	if value, ok := normalization.Lookup(raw, "SpecialRequests", "notes"); ok {
		if notes, ok := value.(string); ok {
			reservation.Notes = &notes
		}
	}

	status := NormalizeReservationStatus(lookupString(raw, "Status"))
	if status == ReservationStatusUnknown {
		status = NormalizeReservationStatus(lookupString(raw, "state"))
	}
	reservation.Status = status

	if reservation.UpdatedAt == "" {
		reservation.UpdatedAt = reservation.CreatedAt
	}

	return reservation, true
}

// NormalizeReservations projects raw list items, dropping records without an id.
func NormalizeReservations(items []any) []Reservation {
	result := make([]Reservation, 0, len(items))
	for _, item := range items {
		rawMap, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if reservation, ok := NormalizeReservation(rawMap); ok {
			result = append(result, reservation)
		}
	}
	return result
}

func lookupString(raw map[string]any, names ...string) any {
	value, _ := normalization.Lookup(raw, names...)
	return value
}
