package infrastructure

import (
	"context"
	"strings"

	"reservationsClient/internal/modules/realtime/application/port"
	"reservationsClient/internal/modules/realtime/domain"
)

// HandlerRegistry dispatches stream messages to the handler registered for their topic.
type HandlerRegistry struct {
	handlers map[string]port.TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]port.TopicHandler)}
}

func (r *HandlerRegistry) Register(h port.TopicHandler) {
	r.handlers[strings.TrimSpace(h.Topic())] = h
}

// Topics lists the registered topics.
func (r *HandlerRegistry) Topics() []string {
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	return topics
}

// Dispatch routes msg by the stream topic it was read from, then by its own topic.
func (r *HandlerRegistry) Dispatch(ctx context.Context, source string, msg *domain.Message) error {
	if msg == nil {
		return nil
	}
	if handler, ok := r.handlers[strings.TrimSpace(source)]; ok {
		return handler.Handle(ctx, msg)
	}
	if handler, ok := r.handlers[msg.Topic]; ok {
		return handler.Handle(ctx, msg)
	}
	return nil
}
