package handler

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"reservationsClient/internal/modules/realtime/application/port"
	"reservationsClient/internal/modules/realtime/application/usecase"
	"reservationsClient/internal/modules/realtime/domain"
	reservations "reservationsClient/internal/modules/reservations/domain"
	"reservationsClient/internal/shared/normalization"
)

// ReservationStreamHandler forwards backend reservation events to websocket
// clients and reloads the working set after a mutation.
type ReservationStreamHandler struct {
	sourceTopic    string
	allowedActions map[string]struct{}
	broadcastUC    *usecase.BroadcastUseCase
	refresher      port.Refresher
}

// NewReservationStreamHandler builds a handler for sourceTopic. An empty
// allowedActions accepts every action. refresher may be nil.
func NewReservationStreamHandler(sourceTopic string, allowedActions []string, broadcastUC *usecase.BroadcastUseCase, refresher port.Refresher) *ReservationStreamHandler {
	actionSet := make(map[string]struct{}, len(allowedActions))
	for _, a := range allowedActions {
		if v := strings.TrimSpace(strings.ToLower(a)); v != "" {
			actionSet[v] = struct{}{}
		}
	}
	return &ReservationStreamHandler{
		sourceTopic:    strings.TrimSpace(sourceTopic),
		allowedActions: actionSet,
		broadcastUC:    broadcastUC,
		refresher:      refresher,
	}
}

func (h *ReservationStreamHandler) Topic() string { return h.sourceTopic }

func (h *ReservationStreamHandler) Handle(ctx context.Context, msg *domain.Message) error {
	if msg == nil {
		return nil
	}
	if msg.Entity != "" && !normalization.IsReservationEntity(msg.Entity) {
		return nil
	}
	action := strings.ToLower(strings.TrimSpace(msg.Action))
	if len(h.allowedActions) > 0 {
		if _, ok := h.allowedActions[action]; !ok {
			return nil
		}
	}

	msg.Entity = domain.ReservationsEntity
	msg.Action = action
	msg.Topic = domain.CustomTopic(msg.Entity, msg.Action)
	if record, ok := normalizeEventRecord(msg.Data); ok {
		msg.Data = record
		if msg.ResourceID == "" {
			msg.ResourceID = strconv.Itoa(record.ID)
		}
	}
	h.broadcastUC.Execute(ctx, msg)

	if h.refresher == nil || !domain.IsMutationAction(action) {
		return nil
	}
	slog.Info("reservation stream refresh", slog.String("action", action), slog.String("resourceId", msg.ResourceID))
	if _, err := h.refresher.Sync(ctx); err != nil {
		return err
	}
	return nil
}

func normalizeEventRecord(data any) (reservations.Reservation, bool) {
	record := normalization.MapFromPayload(data)
	if record == nil {
		return reservations.Reservation{}, false
	}
	return reservations.NormalizeReservation(record)
}

var _ port.TopicHandler = (*ReservationStreamHandler)(nil)
