package domain

import "strings"

// ReservationStatus is the canonical reservation lifecycle value. The backend has shipped both
// PENDING-style and Pending-style casings; the display casing is canonical.
type ReservationStatus string

const (
	ReservationStatusUnknown   ReservationStatus = ""
	ReservationStatusPending   ReservationStatus = "Pending"
	ReservationStatusConfirmed ReservationStatus = "Confirmed"
	ReservationStatusCancelled ReservationStatus = "Cancelled"
	ReservationStatusCompleted ReservationStatus = "Completed"
)

var allowedReservationStatuses = map[string]ReservationStatus{
	"PENDING":   ReservationStatusPending,
	"CONFIRMED": ReservationStatusConfirmed,
	"CANCELLED": ReservationStatusCancelled,
	"CANCELED":  ReservationStatusCancelled,
	"COMPLETED": ReservationStatusCompleted,
}

// ReservationStatuses lists the known statuses in lifecycle order.
func ReservationStatuses() []ReservationStatus {
	return []ReservationStatus{
		ReservationStatusPending,
		ReservationStatusConfirmed,
		ReservationStatusCancelled,
		ReservationStatusCompleted,
	}
}

// NormalizeReservationStatus returns the canonical ReservationStatus for the given input.
// Unknown statuses are trimmed and returned as-is to avoid data loss.
func NormalizeReservationStatus(value any) ReservationStatus {
	s, ok := value.(string)
	if !ok {
		return ReservationStatusUnknown
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ReservationStatusUnknown
	}
	if status, ok := allowedReservationStatuses[strings.ToUpper(trimmed)]; ok {
		return status
	}
	return ReservationStatus(trimmed)
}

// Known reports whether s is one of the canonical statuses.
func (s ReservationStatus) Known() bool {
	_, ok := allowedReservationStatuses[strings.ToUpper(string(s))]
	return ok && s != ReservationStatusUnknown
}

func (s ReservationStatus) String() string {
	return string(s)
}
