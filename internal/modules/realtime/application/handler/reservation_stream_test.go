package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"reservationsClient/internal/modules/realtime/application/usecase"
	"reservationsClient/internal/modules/realtime/domain"
	reservations "reservationsClient/internal/modules/reservations/domain"
)

type recordingBroadcaster struct {
	messages []*domain.Message
}

func (b *recordingBroadcaster) Broadcast(_ context.Context, msg *domain.Message) {
	b.messages = append(b.messages, msg)
}

type countingRefresher struct {
	calls int
	err   error
}

func (r *countingRefresher) Sync(context.Context) (reservations.Page, error) {
	r.calls++
	return reservations.Page{}, r.err
}

func newStreamHandler(refresher *countingRefresher, actions ...string) (*ReservationStreamHandler, *recordingBroadcaster) {
	broadcaster := &recordingBroadcaster{}
	h := NewReservationStreamHandler(" reservations.events ", actions, usecase.NewBroadcastUseCase(broadcaster), refresher)
	return h, broadcaster
}

func TestReservationStreamBroadcastsAndRefreshes(t *testing.T) {
	refresher := &countingRefresher{}
	h, broadcaster := newStreamHandler(refresher, "created", "UPDATED", "snapshot")
	require.Equal(t, "reservations.events", h.Topic())

	err := h.Handle(context.Background(), &domain.Message{
		Entity: "Reservation",
		Action: "Created",
		Data: map[string]any{
			"Id":              float64(42),
			"CustomerName":    "Jane Roe",
			"Status":          "CONFIRMED",
			"ReservationDate": "2026-03-01",
		},
	})
	require.NoError(t, err)
	require.Len(t, broadcaster.messages, 1)

	msg := broadcaster.messages[0]
	require.Equal(t, "reservations.created", msg.Topic)
	require.Equal(t, "42", msg.ResourceID)
	record, ok := msg.Data.(reservations.Reservation)
	require.True(t, ok)
	require.Equal(t, reservations.ReservationStatusConfirmed, record.Status)
	require.Equal(t, 1, refresher.calls)
}

func TestReservationStreamFiltersActionsAndEntities(t *testing.T) {
	refresher := &countingRefresher{}
	h, broadcaster := newStreamHandler(refresher, "created")

	require.NoError(t, h.Handle(context.Background(), &domain.Message{Entity: "reservations", Action: "deleted"}))
	require.NoError(t, h.Handle(context.Background(), &domain.Message{Entity: "users", Action: "created"}))
	require.NoError(t, h.Handle(context.Background(), nil))

	require.Empty(t, broadcaster.messages)
	require.Zero(t, refresher.calls)
}

func TestReservationStreamSnapshotDoesNotRefresh(t *testing.T) {
	refresher := &countingRefresher{}
	h, broadcaster := newStreamHandler(refresher)

	require.NoError(t, h.Handle(context.Background(), &domain.Message{Action: "snapshot", Data: "raw"}))
	require.Len(t, broadcaster.messages, 1)
	require.Equal(t, "raw", broadcaster.messages[0].Data)
	require.Zero(t, refresher.calls)
}

func TestReservationStreamReturnsRefreshError(t *testing.T) {
	refresher := &countingRefresher{err: errors.New("backend down")}
	h, _ := newStreamHandler(refresher)

	err := h.Handle(context.Background(), &domain.Message{Entity: "booking", Action: "deleted", ResourceID: "3"})
	require.EqualError(t, err, "backend down")
}
