package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	domain "reservationsClient/internal/modules/realtime/domain"
	"reservationsClient/internal/modules/realtime/infrastructure"
)

type detailPayload struct {
	ID int `json:"id"`
}

func registerReservationCommands(processor *infrastructure.CommandProcessor, source ReservationSource, now func() time.Time) {
	processor.Register("snapshot", func(_ context.Context, client *infrastructure.Client, _ infrastructure.Command) {
		client.SendDomainMessage(snapshotMessage(source, now()))
	})
	processor.Register("refresh", func(ctx context.Context, client *infrastructure.Client, _ infrastructure.Command) {
		ctx, cancel := context.WithTimeout(ctx, commandTimeout)
		defer cancel()
		if _, err := source.Refresh(ctx); err != nil {
			slog.Warn("ws refresh command failed", slog.String("clientId", client.ID()), slog.Any("error", err))
			sendCommandError(client, "refresh", err.Error(), now())
			return
		}
		client.SendDomainMessage(snapshotMessage(source, now()))
	})
	processor.Register("detail", func(ctx context.Context, client *infrastructure.Client, cmd infrastructure.Command) {
		var payload detailPayload
		if err := json.Unmarshal(cmd.Payload, &payload); err != nil || payload.ID <= 0 {
			sendCommandError(client, "detail", "invalid payload", now())
			return
		}
		ctx, cancel := context.WithTimeout(ctx, commandTimeout)
		defer cancel()
		reservation, err := source.FetchReservationByID(ctx, payload.ID)
		if err != nil {
			slog.Warn("ws detail command failed", slog.String("clientId", client.ID()), slog.Int("id", payload.ID), slog.Any("error", err))
			sendCommandError(client, "detail", err.Error(), now())
			return
		}
		msg := domain.NewMessage(domain.ReservationsEntity, "detail", reservation, now())
		msg.ResourceID = strconv.Itoa(payload.ID)
		client.SendDomainMessage(msg)
	})
}

func snapshotMessage(source ReservationSource, at time.Time) *domain.Message {
	return domain.NewMessage(domain.ReservationsEntity, domain.ActionSnapshot, source.Snapshot(), at)
}

func sendCommandError(client *infrastructure.Client, action, reason string, at time.Time) {
	metadata := map[string]string{"action": action}
	if strings.TrimSpace(reason) != "" {
		metadata["reason"] = reason
	}
	client.SendDomainMessage(&domain.Message{
		Topic:     domain.TopicSystemError,
		Entity:    domain.SystemEntity,
		Action:    domain.ActionError,
		Metadata:  metadata,
		Data:      map[string]string{"error": reason},
		Timestamp: at.UTC(),
	})
}
