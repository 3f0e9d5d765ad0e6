package usecase

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"reservationsClient/internal/modules/realtime/domain"
	reservationport "reservationsClient/internal/modules/reservations/application/port"
)

// ReservationNotifier turns working-set changes into websocket messages.
type ReservationNotifier struct {
	broadcast *BroadcastUseCase
	now       func() time.Time
}

func NewReservationNotifier(broadcast *BroadcastUseCase, now func() time.Time) *ReservationNotifier {
	if now == nil {
		now = time.Now
	}
	return &ReservationNotifier{broadcast: broadcast, now: now}
}

func (n *ReservationNotifier) Publish(ctx context.Context, change reservationport.Change) {
	msg := n.message(change)
	if msg == nil {
		slog.Debug("reservation change ignored", slog.String("kind", string(change.Kind)))
		return
	}
	n.broadcast.Execute(ctx, msg)
}

func (n *ReservationNotifier) message(change reservationport.Change) *domain.Message {
	var (
		action string
		data   any
	)
	switch change.Kind {
	case reservationport.ChangeListed:
		action = domain.ActionList
		if change.Pagination != nil {
			data = map[string]any{"pagination": change.Pagination}
		}
	case reservationport.ChangeCreated:
		action = domain.ActionCreated
		data = change.Reservation
	case reservationport.ChangeUpdated:
		action = domain.ActionUpdated
		data = change.Reservation
	case reservationport.ChangeDeleted:
		action = domain.ActionDeleted
		data = map[string]int{"id": change.ID}
	default:
		return nil
	}

	msg := domain.NewMessage(domain.ReservationsEntity, action, data, n.now())
	if change.ID != 0 {
		msg.ResourceID = strconv.Itoa(change.ID)
	}
	return msg
}

var _ reservationport.ChangePublisher = (*ReservationNotifier)(nil)
