package port

import (
	"context"

	"reservationsClient/internal/modules/realtime/domain"
	reservations "reservationsClient/internal/modules/reservations/domain"
)

// PubSubPort is the contract for consuming external events.
type PubSubPort interface {
	Consume(ctx context.Context, topic string, handler func(*domain.Message) error) error
}

// Broadcaster delivers messages to connected websocket clients.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// TopicHandler is implemented by handlers registered per topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, msg *domain.Message) error
}

// Refresher reloads the local working set after a remote change without touching the user-facing error.
type Refresher interface {
	Sync(ctx context.Context) (reservations.Page, error)
}
