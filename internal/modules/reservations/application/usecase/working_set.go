package usecase

import (
	"slices"

	"github.com/google/uuid"

	"reservationsClient/internal/modules/reservations/domain"
)

// workingSet is the mutable state behind Repository. Every method expects the caller to hold
// Repository.mu.
//
// Each call takes a ticket from seq when it starts. versions records the ticket of the last call
// that wrote an entity; a result only lands when its ticket is newer. deleted keeps tombstones so
// a list that started before a delete cannot bring the record back.
type workingSet struct {
	seq uint64

	items         []domain.Reservation
	pagination    domain.Pagination
	listTicket    uint64
	lastQuery     domain.ListQuery
	current       *domain.Reservation
	currentTicket uint64

	versions map[int]uint64
	deleted  map[int]uint64

	search string
	status domain.ReservationStatus

	lastErr  string
	inflight map[uuid.UUID]struct{}
}

func newWorkingSet(pageSize int) *workingSet {
	return &workingSet{
		items:      []domain.Reservation{},
		pagination: domain.Pagination{Page: 1, PageSize: pageSize},
		lastQuery:  domain.ListQuery{Page: 1, PageSize: pageSize},
		versions:   make(map[int]uint64),
		deleted:    make(map[int]uint64),
		inflight:   make(map[uuid.UUID]struct{}),
	}
}

// begin issues a ticket for a new call. Background calls leave lastErr to the caller that set it.
func (w *workingSet) begin(background bool) (uint64, uuid.UUID) {
	w.seq++
	callID := uuid.New()
	w.inflight[callID] = struct{}{}
	if !background {
		w.lastErr = ""
	}
	return w.seq, callID
}

func (w *workingSet) end(callID uuid.UUID) {
	delete(w.inflight, callID)
}

// applyList replaces the list when no newer list has landed. Entities written by a call newer than
// the list keep their local copy, and tombstoned entities stay gone.
func (w *workingSet) applyList(ticket uint64, query domain.ListQuery, page domain.Page) bool {
	if ticket <= w.listTicket {
		return false
	}

	fetched := make(map[int]struct{}, len(page.Items))
	next := make([]domain.Reservation, 0, len(page.Items))
	for _, item := range page.Items {
		fetched[item.ID] = struct{}{}
		if w.deleted[item.ID] > ticket {
			continue
		}
		if w.versions[item.ID] > ticket {
			if local, ok := w.find(item.ID); ok {
				next = append(next, local)
				continue
			}
		}
		next = append(next, item)
		w.versions[item.ID] = ticket
	}

	// Records created after the list call started may not be in the response yet.
	var newer []domain.Reservation
	for _, item := range w.items {
		if _, ok := fetched[item.ID]; ok {
			continue
		}
		if w.versions[item.ID] > ticket {
			newer = append(newer, item)
		}
	}

	items := make([]domain.Reservation, 0, len(newer)+len(next))
	w.items = append(append(items, newer...), next...)
	w.pagination = page.Pagination
	w.listTicket = ticket
	w.lastQuery = query
	return true
}

// applyUpsert writes reservation when ticket is newer than the entity's last write. Created
// records are prepended; updates only replace an existing row. The current record is refreshed
// when it is the same entity. Pagination is left to the next list fetch.
func (w *workingSet) applyUpsert(ticket uint64, reservation domain.Reservation, prepend bool) bool {
	id := reservation.ID
	if ticket <= w.versions[id] || w.deleted[id] > ticket {
		return false
	}
	w.versions[id] = ticket
	delete(w.deleted, id)

	index := slices.IndexFunc(w.items, func(r domain.Reservation) bool { return r.ID == id })
	switch {
	case index >= 0:
		w.items[index] = reservation
	case prepend:
		w.items = append([]domain.Reservation{reservation}, w.items...)
	}

	if w.current != nil && w.current.ID == id {
		copied := reservation
		w.current = &copied
		w.currentTicket = ticket
	}
	return true
}

func (w *workingSet) applyDelete(ticket uint64, id int) bool {
	if ticket <= w.versions[id] {
		return false
	}
	w.versions[id] = ticket
	w.deleted[id] = ticket

	w.items = slices.DeleteFunc(w.items, func(r domain.Reservation) bool { return r.ID == id })
	if w.current != nil && w.current.ID == id {
		w.current = nil
	}
	return true
}

// applyCurrent makes reservation the current record unless a newer call already wrote the current
// slot or the entity. The matching list row takes the fetched copy too.
func (w *workingSet) applyCurrent(ticket uint64, reservation domain.Reservation) bool {
	id := reservation.ID
	if ticket <= w.currentTicket || w.versions[id] > ticket || w.deleted[id] > ticket {
		return false
	}
	w.currentTicket = ticket
	w.versions[id] = ticket
	copied := reservation
	w.current = &copied

	if index := slices.IndexFunc(w.items, func(r domain.Reservation) bool { return r.ID == id }); index >= 0 {
		w.items[index] = reservation
	}
	return true
}

func (w *workingSet) find(id int) (domain.Reservation, bool) {
	for _, item := range w.items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.Reservation{}, false
}
