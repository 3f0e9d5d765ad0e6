package transport

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	authdomain "reservationsClient/internal/modules/auth/domain"
	domain "reservationsClient/internal/modules/realtime/domain"
	"reservationsClient/internal/modules/realtime/infrastructure"
	"reservationsClient/internal/modules/reservations/application/usecase"
	reservations "reservationsClient/internal/modules/reservations/domain"
)

const (
	clientBuffer   = 16
	commandTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ReservationSource is the working set exposed to websocket clients.
type ReservationSource interface {
	Snapshot() usecase.Snapshot
	Refresh(ctx context.Context) (reservations.Page, error)
	FetchReservationByID(ctx context.Context, id int) (reservations.Reservation, error)
}

// SessionView reports who is signed in to the gateway.
type SessionView interface {
	CurrentUser(ctx context.Context) (*authdomain.User, bool)
}

type WebsocketHandler struct {
	hub            *infrastructure.Hub
	source         ReservationSource
	session        SessionView
	allowedActions []string
	now            func() time.Time
}

func NewWebsocketHandler(hub *infrastructure.Hub, source ReservationSource, session SessionView, allowedActions []string) *WebsocketHandler {
	return &WebsocketHandler{
		hub:            hub,
		source:         source,
		session:        session,
		allowedActions: allowedActions,
		now:            time.Now,
	}
}

// Register mounts GET /ws/reservations on e.
func (h *WebsocketHandler) Register(e *echo.Echo) {
	e.GET("/ws/reservations", h.Connect)
}

// Connect upgrades the request and streams reservation changes. ?all=true
// subscribes to every topic, ?topics=a,b adds extra topics.
func (h *WebsocketHandler) Connect(c echo.Context) error {
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	peerIP := c.RealIP()

	receiveAll, _ := strconv.ParseBool(c.QueryParam("all"))
	topics := append(buildTopics(h.allowedActions), splitList(c.QueryParam("topics"))...)

	userName := ""
	if h.session != nil {
		if user, ok := h.session.CurrentUser(c.Request().Context()); ok {
			userName = user.UserName
		}
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error("ws upgrade failed", slog.String("ip", peerIP), slog.String("reqID", requestID), slog.Any("error", err))
		return err
	}

	processor := infrastructure.NewCommandProcessor(h.hub, nil)
	registerReservationCommands(processor, h.source, h.now)
	client := infrastructure.NewClient(h.hub, conn, userName, clientBuffer, processor)
	if receiveAll {
		h.hub.AttachClientToAll(client)
		topics = []string{"*"}
	} else {
		h.hub.AttachClient(client, topics)
	}

	go client.WritePump()
	go client.ReadPump()

	client.SendDomainMessage(&domain.Message{
		Topic:    domain.TopicSystemConnected,
		Entity:   domain.SystemEntity,
		Action:   domain.ActionConnected,
		Metadata: map[string]string{"clientId": client.ID()},
		Data: map[string]any{
			"entity":        domain.ReservationsEntity,
			"allowedTopics": topics,
			"user":          userName,
			"snapshot":      h.source.Snapshot(),
		},
		Timestamp: h.now().UTC(),
	})

	slog.Info("ws connected", slog.String("clientId", client.ID()), slog.String("user", userName), slog.Bool("all", receiveAll), slog.String("ip", peerIP), slog.String("reqID", requestID))
	return nil
}
