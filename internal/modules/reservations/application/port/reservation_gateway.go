package port

import (
	"context"
	"net/http"

	"reservationsClient/internal/modules/reservations/domain"
)

// ReservationGateway is the REST backend for reservations. Every method takes the outbound
// auth header; an empty header sends the call anonymously.
type ReservationGateway interface {
	List(ctx context.Context, auth http.Header, query domain.ListQuery) (domain.Page, error)
	Get(ctx context.Context, auth http.Header, id int) (domain.Reservation, error)
	Create(ctx context.Context, auth http.Header, req domain.CreateReservationRequest) (domain.Reservation, error)
	Update(ctx context.Context, auth http.Header, id int, req domain.UpdateReservationRequest) (domain.Reservation, error)
	Delete(ctx context.Context, auth http.Header, id int) error
	ListByDate(ctx context.Context, auth http.Header, date string) ([]domain.Reservation, error)
	ListUpcoming(ctx context.Context, auth http.Header) ([]domain.Reservation, error)
}

// AuthHeaderProvider supplies the Authorization header for outbound calls.
type AuthHeaderProvider interface {
	AuthHeader(ctx context.Context) http.Header
}

// ChangeKind names a working-set mutation.
type ChangeKind string

const (
	ChangeListed  ChangeKind = "reservations.listed"
	ChangeCreated ChangeKind = "reservation.created"
	ChangeUpdated ChangeKind = "reservation.updated"
	ChangeDeleted ChangeKind = "reservation.deleted"
)

// Change describes one applied mutation.
type Change struct {
	Kind        ChangeKind
	ID          int
	Reservation *domain.Reservation
	Pagination  *domain.Pagination
}

// ChangePublisher receives successful mutations, e.g. to fan them out to websocket clients.
type ChangePublisher interface {
	Publish(ctx context.Context, change Change)
}
