package infrastructure

import (
	"context"
	"testing"

	"reservationsClient/internal/modules/realtime/domain"
)

type recordingHandler struct {
	topic string
	seen  []*domain.Message
}

func (h *recordingHandler) Topic() string { return h.topic }

func (h *recordingHandler) Handle(_ context.Context, msg *domain.Message) error {
	h.seen = append(h.seen, msg)
	return nil
}

func TestHandlerRegistryDispatch(t *testing.T) {
	registry := NewHandlerRegistry()
	bySource := &recordingHandler{topic: "reservations.events"}
	byTopic := &recordingHandler{topic: "reservations.created"}
	registry.Register(bySource)
	registry.Register(byTopic)

	msg := &domain.Message{Topic: "reservations.created"}
	if err := registry.Dispatch(context.Background(), "reservations.events", msg); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(bySource.seen) != 1 || len(byTopic.seen) != 0 {
		t.Fatalf("expected source handler to win, got %d/%d", len(bySource.seen), len(byTopic.seen))
	}

	if err := registry.Dispatch(context.Background(), "unknown", msg); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(byTopic.seen) != 1 {
		t.Fatalf("expected topic handler fallback, got %d", len(byTopic.seen))
	}

	if err := registry.Dispatch(context.Background(), "unknown", nil); err != nil {
		t.Fatalf("expected nil message to be ignored, got %v", err)
	}
	if got := len(registry.Topics()); got != 2 {
		t.Fatalf("expected 2 topics, got %d", got)
	}
}
