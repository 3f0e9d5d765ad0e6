package infrastructure

import (
	"context"
	"log/slog"
	"net/http"

	"reservationsClient/internal/modules/reservations/application/port"
	"reservationsClient/internal/modules/reservations/domain"
	"reservationsClient/internal/shared/httputil"
)

const (
	fallbackList     = "Failed to fetch reservations"
	fallbackGet      = "Failed to fetch reservation"
	fallbackCreate   = "Failed to create reservation"
	fallbackUpdate   = "Failed to update reservation"
	fallbackDelete   = "Failed to delete reservation"
	fallbackByDate   = "Failed to fetch reservations by date"
	fallbackUpcoming = "Failed to fetch upcoming reservations"
)

// ReservationHTTPClient implements ReservationGateway against the backend REST API.
type ReservationHTTPClient struct {
	rest            *httputil.RESTClient
	defaultPageSize int
}

func NewReservationHTTPClient(rest *httputil.RESTClient, defaultPageSize int) *ReservationHTTPClient {
	if defaultPageSize <= 0 {
		defaultPageSize = domain.DefaultPageSize
	}
	return &ReservationHTTPClient{rest: rest, defaultPageSize: defaultPageSize}
}

func (c *ReservationHTTPClient) List(ctx context.Context, auth http.Header, query domain.ListQuery) (domain.Page, error) {
	query = query.Normalize(c.defaultPageSize)
	payload, err := c.rest.DoJSON(ctx, httputil.Call{
		Op:       "list reservations",
		Method:   http.MethodGet,
		Path:     reservationsPath,
		Query:    buildListValues(query),
		Header:   auth,
		Fallback: fallbackList,
	})
	if err != nil {
		return domain.Page{}, err
	}

	env, err := decode("list reservations", payload, fallbackList)
	if err != nil {
		return domain.Page{}, err
	}
	page := domain.NormalizePage(env, query.Page, query.PageSize)
	slog.Debug("reservations page decoded", slog.String("envelope", env.Kind.String()), slog.Int("items", len(page.Items)))
	return page, nil
}

func (c *ReservationHTTPClient) Get(ctx context.Context, auth http.Header, id int) (domain.Reservation, error) {
	return c.single(ctx, httputil.Call{
		Op:       "get reservation",
		Method:   http.MethodGet,
		Path:     reservationPath(id),
		Header:   auth,
		Fallback: fallbackGet,
	})
}

func (c *ReservationHTTPClient) Create(ctx context.Context, auth http.Header, req domain.CreateReservationRequest) (domain.Reservation, error) {
	return c.single(ctx, httputil.Call{
		Op:       "create reservation",
		Method:   http.MethodPost,
		Path:     reservationsPath,
		Header:   auth,
		Body:     req.Wire(),
		Fallback: fallbackCreate,
	})
}

func (c *ReservationHTTPClient) Update(ctx context.Context, auth http.Header, id int, req domain.UpdateReservationRequest) (domain.Reservation, error) {
	return c.single(ctx, httputil.Call{
		Op:       "update reservation",
		Method:   http.MethodPut,
		Path:     reservationPath(id),
		Header:   auth,
		Body:     req.Wire(),
		Fallback: fallbackUpdate,
	})
}

func (c *ReservationHTTPClient) Delete(ctx context.Context, auth http.Header, id int) error {
	_, err := c.rest.DoJSON(ctx, httputil.Call{
		Op:       "delete reservation",
		Method:   http.MethodDelete,
		Path:     reservationPath(id),
		Header:   auth,
		Fallback: fallbackDelete,
	})
	return err
}

func (c *ReservationHTTPClient) ListByDate(ctx context.Context, auth http.Header, date string) ([]domain.Reservation, error) {
	return c.collection(ctx, httputil.Call{
		Op:       "list reservations by date",
		Method:   http.MethodGet,
		Path:     reservationsByDatePath(date),
		Header:   auth,
		Fallback: fallbackByDate,
	})
}

func (c *ReservationHTTPClient) ListUpcoming(ctx context.Context, auth http.Header) ([]domain.Reservation, error) {
	return c.collection(ctx, httputil.Call{
		Op:       "list upcoming reservations",
		Method:   http.MethodGet,
		Path:     upcomingReservationsPath(),
		Header:   auth,
		Fallback: fallbackUpcoming,
	})
}

func (c *ReservationHTTPClient) single(ctx context.Context, call httputil.Call) (domain.Reservation, error) {
	payload, err := c.rest.DoJSON(ctx, call)
	if err != nil {
		return domain.Reservation{}, err
	}
	env, err := decode(call.Op, payload, call.Fallback)
	if err != nil {
		return domain.Reservation{}, err
	}
	reservation, err := env.Reservation()
	if err != nil {
		slog.Warn("reservation payload rejected", slog.String("op", call.Op), slog.String("envelope", env.Kind.String()), slog.Any("error", err))
		return domain.Reservation{}, &httputil.APIError{Op: call.Op, Message: call.Fallback, Err: err}
	}
	return reservation, nil
}

func (c *ReservationHTTPClient) collection(ctx context.Context, call httputil.Call) ([]domain.Reservation, error) {
	payload, err := c.rest.DoJSON(ctx, call)
	if err != nil {
		return nil, err
	}
	env, err := decode(call.Op, payload, call.Fallback)
	if err != nil {
		return nil, err
	}
	return env.Reservations(), nil
}

func decode(op string, payload any, fallback string) (domain.Envelope, error) {
	env, err := domain.DecodeEnvelope(payload)
	if err != nil {
		slog.Warn("reservation envelope rejected", slog.String("op", op), slog.Any("error", err))
		return domain.Envelope{}, &httputil.APIError{Op: op, Message: fallback, Err: err}
	}
	return env, nil
}

var _ port.ReservationGateway = (*ReservationHTTPClient)(nil)
