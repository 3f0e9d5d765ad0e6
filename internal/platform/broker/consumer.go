package broker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"reservationsClient/internal/modules/realtime/application/port"
	"reservationsClient/internal/modules/realtime/domain"
	"reservationsClient/internal/shared/normalization"
)

const readRetryDelay = time.Second

// KafkaPubSub opens one reader per consumed topic.
type KafkaPubSub struct {
	brokers []string
	groupID string
	now     func() time.Time
}

func NewKafkaPubSub(brokers []string, groupID string) *KafkaPubSub {
	return &KafkaPubSub{brokers: brokers, groupID: groupID, now: time.Now}
}

// Consume reads topic until ctx is done. Handler errors are logged and the
// offset still advances.
func (p *KafkaPubSub) Consume(ctx context.Context, topic string, handler func(*domain.Message) error) error {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: p.brokers,
		GroupID: p.groupID,
		Topic:   topic,
	})
	defer func() {
		if err := reader.Close(); err != nil {
			slog.Warn("kafka reader close error", slog.String("topic", topic), slog.Any("error", err))
		}
	}()

	for {
		m, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return ctx.Err()
			}
			slog.Warn("kafka read error", slog.String("topic", topic), slog.Any("error", err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(readRetryDelay):
			}
			continue
		}
		msg := decodeMessage(m, p.now())
		slog.Info("kafka message consumed",
			slog.String("topic", m.Topic),
			slog.Int("partition", m.Partition),
			slog.Int64("offset", m.Offset),
			slog.String("entity", msg.Entity),
			slog.String("action", msg.Action),
			slog.String("resourceId", msg.ResourceID),
		)
		if err := handler(msg); err != nil {
			slog.Warn("kafka handler error", slog.String("topic", m.Topic), slog.Any("error", err))
		}
	}
}

type rawEvent struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID json.RawMessage   `json:"resourceId"`
	Topic      string            `json:"topic"`
	Metadata   map[string]string `json:"metadata"`
	Data       any               `json:"data"`
}

func decodeMessage(m kafka.Message, now time.Time) *domain.Message {
	msg := &domain.Message{Timestamp: now.UTC()}
	if !m.Time.IsZero() {
		msg.Timestamp = m.Time.UTC()
	}

	var event rawEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		msg.Topic = m.Topic
		entity, action := inferEntityActionFromTopic(m.Topic)
		msg.Entity = normalization.NormalizeEntity(entity)
		msg.Action = action
		msg.Data = string(m.Value)
		return msg
	}

	inferredEntity, inferredAction := inferEntityActionFromTopic(m.Topic)
	msg.Entity = normalization.NormalizeEntity(firstNonEmpty(event.Entity, inferredEntity))
	msg.Action = strings.ToLower(firstNonEmpty(event.Action, inferredAction))
	msg.ResourceID = decodeResourceID(event.ResourceID)
	msg.Metadata = event.Metadata
	msg.Data = event.Data

	if event.Topic != "" {
		msg.Topic = event.Topic
	} else {
		msg.Topic = domain.CustomTopic(msg.Entity, msg.Action)
	}
	return msg
}

// decodeResourceID accepts both string and numeric ids.
func decodeResourceID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil {
		return number.String()
	}
	return ""
}

func inferEntityActionFromTopic(topic string) (string, string) {
	parts := strings.Split(topic, ".")
	if len(parts) >= 2 {
		entity := strings.TrimSpace(parts[len(parts)-2])
		action := strings.TrimSpace(parts[len(parts)-1])
		if entity != "" && action != "" {
			return entity, action
		}
	}
	return "", "unknown"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

var _ port.PubSubPort = (*KafkaPubSub)(nil)
