package infrastructure

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"reservationsClient/internal/modules/realtime/domain"
)

func newTestClient(hub *Hub, buf int) *Client {
	return NewClient(hub, nil, "tester", buf, nil)
}

func receive(t *testing.T, c *Client) domain.Message {
	t.Helper()
	select {
	case data := <-c.send:
		var msg domain.Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatalf("expected a message for client %s", c.ID())
	}
	return domain.Message{}
}

func requireEmpty(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.send:
		t.Fatalf("expected no message, got %s", data)
	default:
	}
}

func TestBroadcastReachesTopicSubscribersOnly(t *testing.T) {
	hub := NewHub()
	subscriber := newTestClient(hub, 4)
	other := newTestClient(hub, 4)
	hub.AttachClient(subscriber, []string{"reservations.created", " "})
	hub.AttachClient(other, []string{"reservations.deleted"})

	hub.Broadcast(context.Background(), domain.NewMessage(domain.ReservationsEntity, domain.ActionCreated, nil, time.Now()))

	msg := receive(t, subscriber)
	require.Equal(t, "reservations.created", msg.Topic)
	requireEmpty(t, other)
	require.Equal(t, 2, hub.ClientCount())
}

func TestBroadcastGlobalClientsReceiveEverythingOnce(t *testing.T) {
	hub := NewHub()
	global := newTestClient(hub, 4)
	hub.AttachClientToAll(global)
	hub.subscribe(global, "reservations.updated")

	hub.Broadcast(context.Background(), domain.NewMessage(domain.ReservationsEntity, domain.ActionUpdated, nil, time.Now()))
	hub.Broadcast(context.Background(), domain.NewMessage("system", "custom", nil, time.Now()))

	require.Equal(t, "reservations.updated", receive(t, global).Topic)
	require.Equal(t, "system.custom", receive(t, global).Topic)
	requireEmpty(t, global)
}

func TestBroadcastHonoursClientTarget(t *testing.T) {
	hub := NewHub()
	first := newTestClient(hub, 4)
	second := newTestClient(hub, 4)
	hub.AttachClient(first, domain.ReservationTopics())
	hub.AttachClient(second, domain.ReservationTopics())

	msg := domain.NewMessage(domain.ReservationsEntity, domain.ActionSnapshot, nil, time.Now())
	msg.Metadata = map[string]string{"clientId": second.ID()}
	hub.Broadcast(context.Background(), msg)

	requireEmpty(t, first)
	require.Equal(t, "reservations.snapshot", receive(t, second).Topic)
}

func TestSlowClientIsDetached(t *testing.T) {
	hub := NewHub()
	slow := newTestClient(hub, 1)
	hub.AttachClient(slow, []string{"reservations.list"})

	msg := domain.NewMessage(domain.ReservationsEntity, domain.ActionList, nil, time.Now())
	hub.Broadcast(context.Background(), msg)
	hub.Broadcast(context.Background(), msg)

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
	hub.Broadcast(context.Background(), msg)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, 4)
	hub.AttachClient(client, []string{"reservations.deleted"})
	hub.unsubscribe(client, "reservations.deleted")

	hub.Broadcast(context.Background(), domain.NewMessage(domain.ReservationsEntity, domain.ActionDeleted, nil, time.Now()))
	requireEmpty(t, client)
}

func TestCloseHooksRunOnce(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, 1)
	hub.AttachClient(client, nil)

	calls := 0
	client.AddCloseHook(func(*Client) { calls++ })
	client.AddCloseHook(func(*Client) { panic("boom") })

	hub.detachClient(client)
	hub.detachClient(client)
	require.Equal(t, 1, calls)
}
