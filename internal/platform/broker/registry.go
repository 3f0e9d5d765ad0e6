package broker

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"reservationsClient/internal/modules/realtime/application/port"
	"reservationsClient/internal/modules/realtime/domain"
	"reservationsClient/internal/modules/realtime/infrastructure"
)

// StartConsumers starts one consumer per topic and returns a WaitGroup that
// completes once every consumer has stopped.
func StartConsumers(ctx context.Context, pubsub port.PubSubPort, registry *infrastructure.HandlerRegistry, topics []string) *sync.WaitGroup {
	var wg sync.WaitGroup
	for _, topic := range topics {
		topic = strings.TrimSpace(topic)
		if topic == "" {
			continue
		}
		wg.Add(1)
		go func(tp string) {
			defer wg.Done()
			err := pubsub.Consume(ctx, tp, func(msg *domain.Message) error {
				return registry.Dispatch(ctx, tp, msg)
			})
			if err != nil && ctx.Err() == nil {
				slog.Error("consumer stopped", slog.String("topic", tp), slog.Any("error", err))
			}
		}(topic)
	}
	return &wg
}

// StartKafkaConsumers is a no-op without brokers.
func StartKafkaConsumers(ctx context.Context, registry *infrastructure.HandlerRegistry, brokers []string, groupID string, topics []string) *sync.WaitGroup {
	if len(brokers) == 0 {
		slog.Info("kafka disabled, no brokers configured")
		return &sync.WaitGroup{}
	}
	return StartConsumers(ctx, NewKafkaPubSub(brokers, groupID), registry, topics)
}
