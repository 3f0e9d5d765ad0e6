package usecase

import (
	"context"
	"testing"
	"time"

	"reservationsClient/internal/modules/realtime/domain"
	reservationport "reservationsClient/internal/modules/reservations/application/port"
	reservations "reservationsClient/internal/modules/reservations/domain"
)

type recordingBroadcaster struct {
	messages []*domain.Message
}

func (b *recordingBroadcaster) Broadcast(_ context.Context, msg *domain.Message) {
	b.messages = append(b.messages, msg)
}

func TestReservationNotifierMapsChanges(t *testing.T) {
	at := time.Date(2026, time.February, 2, 9, 30, 0, 0, time.UTC)
	broadcaster := &recordingBroadcaster{}
	notifier := NewReservationNotifier(NewBroadcastUseCase(broadcaster), func() time.Time { return at })
	ctx := context.Background()

	created := reservations.Reservation{ID: 7, CustomerName: "John Doe", Status: reservations.ReservationStatusPending}
	notifier.Publish(ctx, reservationport.Change{Kind: reservationport.ChangeCreated, ID: 7, Reservation: &created})
	notifier.Publish(ctx, reservationport.Change{Kind: reservationport.ChangeDeleted, ID: 7})
	notifier.Publish(ctx, reservationport.Change{Kind: reservationport.ChangeListed, Pagination: &reservations.Pagination{Total: 1}})
	notifier.Publish(ctx, reservationport.Change{Kind: "reservation.archived"})

	if len(broadcaster.messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(broadcaster.messages))
	}

	first := broadcaster.messages[0]
	if first.Topic != "reservations.created" || first.ResourceID != "7" || !first.Timestamp.Equal(at) {
		t.Fatalf("unexpected created message: %+v", first)
	}
	if record, ok := first.Data.(*reservations.Reservation); !ok || record.CustomerName != "John Doe" {
		t.Fatalf("expected reservation payload, got %#v", first.Data)
	}

	deleted := broadcaster.messages[1]
	if deleted.Topic != "reservations.deleted" {
		t.Fatalf("unexpected deleted topic: %s", deleted.Topic)
	}
	if data, ok := deleted.Data.(map[string]int); !ok || data["id"] != 7 {
		t.Fatalf("unexpected deleted payload: %#v", deleted.Data)
	}

	listed := broadcaster.messages[2]
	if listed.Topic != "reservations.list" || listed.ResourceID != "" {
		t.Fatalf("unexpected list message: %+v", listed)
	}
}

func TestBroadcastUseCaseSkipsTopiclessMessages(t *testing.T) {
	broadcaster := &recordingBroadcaster{}
	uc := NewBroadcastUseCase(broadcaster)

	uc.Execute(context.Background(), nil)
	uc.Execute(context.Background(), &domain.Message{})
	uc.Execute(context.Background(), &domain.Message{Topic: "reservations.list"})

	if len(broadcaster.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(broadcaster.messages))
	}
}
