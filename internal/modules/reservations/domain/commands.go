package domain

import "strings"

// CreateReservationRequest is the form payload submitted when booking.
type CreateReservationRequest struct {
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerPhone   string  `json:"customerPhone"`
	ReservationDate string  `json:"reservationDate"`
	ReservationTime string  `json:"reservationTime"`
	NumberOfGuests  int     `json:"numberOfGuests"`
	Notes           *string `json:"notes,omitempty"`
}

// UpdateReservationRequest replaces every mutable field, status included.
type UpdateReservationRequest struct {
	CreateReservationRequest
	Status ReservationStatus `json:"status"`
}

// WireReservationRequest is the PascalCase body the backend binds create/update requests to.
type WireReservationRequest struct {
	CustomerName    string  `json:"CustomerName"`
	CustomerEmail   string  `json:"CustomerEmail"`
	CustomerPhone   string  `json:"CustomerPhone"`
	ReservationDate string  `json:"ReservationDate"`
	ReservationTime string  `json:"ReservationTime"`
	NumberOfGuests  int     `json:"NumberOfGuests"`
	SpecialRequests *string `json:"SpecialRequests,omitempty"`
	Status          string  `json:"Status,omitempty"`
}

// Wire converts the form payload into the backend contract.
func (r CreateReservationRequest) Wire() WireReservationRequest {
	return WireReservationRequest{
		CustomerName:    strings.TrimSpace(r.CustomerName),
		CustomerEmail:   strings.TrimSpace(r.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(r.CustomerPhone),
		ReservationDate: strings.TrimSpace(r.ReservationDate),
		ReservationTime: strings.TrimSpace(r.ReservationTime),
		NumberOfGuests:  r.NumberOfGuests,
		SpecialRequests: trimmedNotes(r.Notes),
	}
}

// Wire converts the update payload into the backend contract, mapping status to its canonical casing.
func (r UpdateReservationRequest) Wire() WireReservationRequest {
	wire := r.CreateReservationRequest.Wire()
	wire.Status = string(NormalizeReservationStatus(string(r.Status)))
	return wire
}

// ListQuery carries the paging and search parameters of a list fetch.
type ListQuery struct {
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Search   string `json:"search"`
}

// Normalize returns a sanitized copy, defaulting page to 1 and pageSize to defaultPageSize.
func (q ListQuery) Normalize(defaultPageSize int) ListQuery {
	normalized := q
	if normalized.Page <= 0 {
		normalized.Page = 1
	}
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	if normalized.PageSize <= 0 {
		normalized.PageSize = defaultPageSize
	}
	if normalized.PageSize > MaxPageSize {
		normalized.PageSize = MaxPageSize
	}
	normalized.Search = strings.TrimSpace(normalized.Search)
	return normalized
}

func trimmedNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
