package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"

	"reservationsClient/internal/modules/reservations/application/port"
	"reservationsClient/internal/modules/reservations/domain"
)

// Snapshot is a consistent copy of the working set.
type Snapshot struct {
	Reservations       []domain.Reservation     `json:"reservations"`
	CurrentReservation *domain.Reservation      `json:"currentReservation"`
	Pagination         domain.Pagination        `json:"pagination"`
	SearchQuery        string                   `json:"searchQuery"`
	StatusFilter       domain.ReservationStatus `json:"statusFilter"`
	Error              string                   `json:"error,omitempty"`
	IsLoading          bool                     `json:"isLoading"`
}

// Repository owns the reservation working set and mediates every backend call for it.
type Repository struct {
	gateway   port.ReservationGateway
	auth      port.AuthHeaderProvider
	publisher port.ChangePublisher
	pageSize  int

	mu    sync.Mutex
	state *workingSet
}

// Option customizes a Repository.
type Option func(*Repository)

// WithPublisher forwards applied mutations to publisher.
func WithPublisher(publisher port.ChangePublisher) Option {
	return func(r *Repository) {
		r.publisher = publisher
	}
}

// WithPageSize sets the page size used when a query leaves it empty.
func WithPageSize(size int) Option {
	return func(r *Repository) {
		if size > 0 {
			r.pageSize = size
		}
	}
}

func NewRepository(gateway port.ReservationGateway, auth port.AuthHeaderProvider, opts ...Option) *Repository {
	r := &Repository{
		gateway:  gateway,
		auth:     auth,
		pageSize: domain.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.state = newWorkingSet(r.pageSize)
	return r
}

// FetchReservations loads one page and replaces the list with it.
func (r *Repository) FetchReservations(ctx context.Context, query domain.ListQuery) (domain.Page, error) {
	return r.fetchList(ctx, query, false)
}

// Refresh re-runs the last applied list query.
func (r *Repository) Refresh(ctx context.Context) (domain.Page, error) {
	return r.fetchList(ctx, r.lastQuery(), false)
}

// Sync re-runs the last applied list query on behalf of a background event. It neither clears
// nor records the error shown to the user; failures are only logged.
func (r *Repository) Sync(ctx context.Context) (domain.Page, error) {
	return r.fetchList(ctx, r.lastQuery(), true)
}

func (r *Repository) lastQuery() domain.ListQuery {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.lastQuery
}

func (r *Repository) fetchList(ctx context.Context, query domain.ListQuery, background bool) (domain.Page, error) {
	query = query.Normalize(r.pageSize)
	ticket, done := r.beginCall(background)
	defer done()

	slog.Info("reservations fetch start", slog.Int("page", query.Page), slog.Int("pageSize", query.PageSize), slog.String("search", query.Search), slog.Bool("background", background))

	page, err := r.gateway.List(ctx, r.header(ctx), query)
	if err != nil {
		if background {
			slog.Warn("reservations sync failed", slog.Any("error", err))
		} else {
			r.fail("reservations fetch failed", err)
		}
		return domain.Page{}, err
	}

	r.mu.Lock()
	applied := r.state.applyList(ticket, query, page)
	r.mu.Unlock()

	slog.Info("reservations fetched", slog.Int("count", len(page.Items)), slog.Int("total", page.Pagination.Total), slog.Bool("applied", applied))
	if applied {
		pagination := page.Pagination
		r.publish(ctx, port.Change{Kind: port.ChangeListed, Pagination: &pagination})
	}
	return page, nil
}

// FetchReservationByID loads one record and makes it the current reservation.
func (r *Repository) FetchReservationByID(ctx context.Context, id int) (domain.Reservation, error) {
	ticket, done := r.begin()
	defer done()

	reservation, err := r.gateway.Get(ctx, r.header(ctx), id)
	if err != nil {
		r.fail("reservation fetch failed", err, slog.Int("id", id))
		return domain.Reservation{}, err
	}

	r.mu.Lock()
	r.state.applyCurrent(ticket, reservation)
	r.mu.Unlock()
	return reservation, nil
}

// CreateReservation submits req and prepends the created record.
func (r *Repository) CreateReservation(ctx context.Context, req domain.CreateReservationRequest) (domain.Reservation, error) {
	ticket, done := r.begin()
	defer done()

	reservation, err := r.gateway.Create(ctx, r.header(ctx), req)
	if err != nil {
		r.fail("reservation create failed", err)
		return domain.Reservation{}, err
	}

	r.mu.Lock()
	applied := r.state.applyUpsert(ticket, reservation, true)
	r.mu.Unlock()

	slog.Info("reservation created", slog.Int("id", reservation.ID), slog.Bool("applied", applied))
	if applied {
		r.publish(ctx, port.Change{Kind: port.ChangeCreated, ID: reservation.ID, Reservation: &reservation})
	}
	return reservation, nil
}

// UpdateReservation replaces the record with id, refreshing the current reservation when it matches.
func (r *Repository) UpdateReservation(ctx context.Context, id int, req domain.UpdateReservationRequest) (domain.Reservation, error) {
	ticket, done := r.begin()
	defer done()

	reservation, err := r.gateway.Update(ctx, r.header(ctx), id, req)
	if err != nil {
		r.fail("reservation update failed", err, slog.Int("id", id))
		return domain.Reservation{}, err
	}
	if reservation.ID == 0 {
		reservation.ID = id
	}

	r.mu.Lock()
	applied := r.state.applyUpsert(ticket, reservation, false)
	r.mu.Unlock()

	slog.Info("reservation updated", slog.Int("id", id), slog.Bool("applied", applied))
	if applied {
		r.publish(ctx, port.Change{Kind: port.ChangeUpdated, ID: id, Reservation: &reservation})
	}
	return reservation, nil
}

// DeleteReservation removes the record with id and clears it as current.
func (r *Repository) DeleteReservation(ctx context.Context, id int) error {
	ticket, done := r.begin()
	defer done()

	if err := r.gateway.Delete(ctx, r.header(ctx), id); err != nil {
		r.fail("reservation delete failed", err, slog.Int("id", id))
		return err
	}

	r.mu.Lock()
	applied := r.state.applyDelete(ticket, id)
	r.mu.Unlock()

	slog.Info("reservation deleted", slog.Int("id", id), slog.Bool("applied", applied))
	if applied {
		r.publish(ctx, port.Change{Kind: port.ChangeDeleted, ID: id})
	}
	return nil
}

// FetchReservationsByDate returns the reservations on date without touching the list.
func (r *Repository) FetchReservationsByDate(ctx context.Context, date string) ([]domain.Reservation, error) {
	_, done := r.begin()
	defer done()

	items, err := r.gateway.ListByDate(ctx, r.header(ctx), strings.TrimSpace(date))
	if err != nil {
		r.fail("reservations by date fetch failed", err, slog.String("date", date))
		return nil, err
	}
	return items, nil
}

// FetchUpcoming returns upcoming reservations without touching the list.
func (r *Repository) FetchUpcoming(ctx context.Context) ([]domain.Reservation, error) {
	_, done := r.begin()
	defer done()

	items, err := r.gateway.ListUpcoming(ctx, r.header(ctx))
	if err != nil {
		r.fail("upcoming reservations fetch failed", err)
		return nil, err
	}
	return items, nil
}

func (r *Repository) SetSearchQuery(query string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.search = query
}

// SetStatusFilter accepts any casing; an empty status clears the filter.
func (r *Repository) SetStatusFilter(status domain.ReservationStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.status = domain.NormalizeReservationStatus(string(status))
}

// FilteredReservations applies the search query and status filter to the loaded list.
func (r *Repository) FilteredReservations() []domain.Reservation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return domain.Filter{Search: r.state.search, Status: r.state.status}.Apply(r.state.items)
}

func (r *Repository) ClearError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.lastErr = ""
}

func (r *Repository) ClearCurrentReservation() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.current = nil
}

func (r *Repository) Error() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.lastErr
}

func (r *Repository) IsLoading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.state.inflight) > 0
}

func (r *Repository) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := Snapshot{
		Reservations: slices.Clone(r.state.items),
		Pagination:   r.state.pagination,
		SearchQuery:  r.state.search,
		StatusFilter: r.state.status,
		Error:        r.state.lastErr,
		IsLoading:    len(r.state.inflight) > 0,
	}
	if r.state.current != nil {
		current := *r.state.current
		snapshot.CurrentReservation = &current
	}
	return snapshot
}

func (r *Repository) begin() (uint64, func()) {
	return r.beginCall(false)
}

func (r *Repository) beginCall(background bool) (uint64, func()) {
	r.mu.Lock()
	ticket, callID := r.state.begin(background)
	r.mu.Unlock()
	return ticket, func() {
		r.mu.Lock()
		r.state.end(callID)
		r.mu.Unlock()
	}
}

func (r *Repository) fail(msg string, err error, attrs ...any) {
	r.mu.Lock()
	r.state.lastErr = err.Error()
	r.mu.Unlock()
	slog.Warn(msg, append(attrs, slog.Any("error", err))...)
}

func (r *Repository) header(ctx context.Context) http.Header {
	if r.auth == nil {
		return http.Header{}
	}
	return r.auth.AuthHeader(ctx)
}

func (r *Repository) publish(ctx context.Context, change port.Change) {
	if r.publisher == nil {
		return
	}
	r.publisher.Publish(ctx, change)
}
