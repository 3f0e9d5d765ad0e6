package transport

import (
	"strings"

	domain "reservationsClient/internal/modules/realtime/domain"
)

// buildTopics returns the reservation topics plus one topic per extra
// action, without duplicates.
func buildTopics(allowedActions []string) []string {
	baseTopics := domain.ReservationTopics()
	topics := make([]string, 0, len(baseTopics)+len(allowedActions))
	seen := make(map[string]struct{}, len(baseTopics)+len(allowedActions))
	for _, topic := range baseTopics {
		topics = append(topics, topic)
		seen[topic] = struct{}{}
	}
	for _, action := range allowedActions {
		action = strings.TrimSpace(strings.ToLower(action))
		if action == "" {
			continue
		}
		topic := domain.CustomTopic(domain.ReservationsEntity, action)
		if _, exists := seen[topic]; exists {
			continue
		}
		topics = append(topics, topic)
		seen[topic] = struct{}{}
	}
	return topics
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
