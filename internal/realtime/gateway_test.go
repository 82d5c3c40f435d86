package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(id string) *Client {
	return NewClient(id, nil)
}

// drain empties a client's send buffer and returns the queued events.
func drain(c *Client) []outbound {
	var events []outbound
	for {
		select {
		case msg := <-c.send:
			events = append(events, msg)
		default:
			return events
		}
	}
}

func eventNames(events []outbound) []string {
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.Event
	}
	return names
}

func TestGatewayEmitToUser(t *testing.T) {
	g := NewGateway()
	c := newTestClient("conn-1")
	g.Connect(c)
	g.Register(7, "conn-1")
	drain(c) // discard presence broadcast

	g.EmitToUser(7, EventNewNotification, map[string]string{"title": "hi"})

	events := drain(c)
	require.Len(t, events, 1)
	assert.Equal(t, EventNewNotification, events[0].Event)
}

func TestGatewayEmitToUnknownUserIsNoop(t *testing.T) {
	g := NewGateway()
	c := newTestClient("conn-1")
	g.Connect(c)

	// Connected but never registered: not addressable.
	g.EmitToUser(7, EventNewNotification, nil)
	assert.Empty(t, drain(c))

	// Never connected at all.
	g.EmitToUser(99, EventNewNotification, nil)
}

func TestGatewayLastConnectWins(t *testing.T) {
	g := NewGateway()
	c1 := newTestClient("conn-1")
	c2 := newTestClient("conn-2")
	g.Connect(c1)
	g.Connect(c2)

	g.Register(7, "conn-1")
	g.Register(7, "conn-2")
	drain(c1)
	drain(c2)

	g.EmitToUser(7, EventNewNotification, nil)

	assert.Empty(t, drain(c1), "superseded connection must not receive user events")
	require.Len(t, drain(c2), 1)
}

func TestGatewayStaleUnregisterKeepsNewConnection(t *testing.T) {
	g := NewGateway()
	c1 := newTestClient("conn-1")
	c2 := newTestClient("conn-2")
	g.Connect(c1)
	g.Connect(c2)
	g.Register(7, "conn-1")
	g.Register(7, "conn-2")

	// The old socket tears down after the new one registered; the user must
	// stay online on conn-2 and no offline broadcast may fire.
	g.Unregister("conn-1")
	drain(c2)

	connID, ok := g.UserConnection(7)
	require.True(t, ok)
	assert.Equal(t, "conn-2", connID)

	g.EmitToUser(7, EventNewNotification, nil)
	require.Len(t, drain(c2), 1)
}

func TestGatewayUnregisterBroadcastsOffline(t *testing.T) {
	g := NewGateway()
	c1 := newTestClient("conn-1")
	c2 := newTestClient("conn-2")
	g.Connect(c1)
	g.Connect(c2)
	g.Register(7, "conn-1")
	drain(c1)
	drain(c2)

	g.Unregister("conn-1")

	events := drain(c2)
	require.Len(t, events, 1)
	assert.Equal(t, EventUserStatusChange, events[0].Event)
	assert.Equal(t, StatusPayload{UserID: 7, Status: "offline"}, events[0].Payload)

	_, ok := g.UserConnection(7)
	assert.False(t, ok)

	// Emits to the departed user are silent no-ops from here on.
	g.EmitToUser(7, EventNewNotification, nil)
	assert.Empty(t, drain(c1))
}

func TestGatewayRoomScopedEmit(t *testing.T) {
	g := NewGateway()
	member := newTestClient("conn-1")
	sender := newTestClient("conn-2")
	outsider := newTestClient("conn-3")
	g.Connect(member)
	g.Connect(sender)
	g.Connect(outsider)

	g.JoinGroup("conn-1", "room-a")
	g.JoinGroup("conn-2", "room-a")

	g.EmitToGroup("room-a", EventUserTyping, nil, "conn-2")

	assert.Equal(t, []string{EventUserTyping}, eventNames(drain(member)))
	assert.Empty(t, drain(sender), "originating connection is excluded")
	assert.Empty(t, drain(outsider))

	// After leaving, the former member receives nothing.
	g.LeaveGroup("conn-1", "room-a")
	g.EmitToGroup("room-a", EventUserTyping, nil, "")
	assert.Empty(t, drain(member))
	require.Len(t, drain(sender), 1)
}

func TestGatewayJoinUnknownConnectionIgnored(t *testing.T) {
	g := NewGateway()
	g.JoinGroup("ghost", "room-a")
	g.EmitToGroup("room-a", EventNewMessage, nil, "")
	assert.Equal(t, 0, g.ConnectionCount())
}

func TestGatewayBroadcastReachesAnonymousConnections(t *testing.T) {
	g := NewGateway()
	registered := newTestClient("conn-1")
	anonymous := newTestClient("conn-2")
	g.Connect(registered)
	g.Connect(anonymous)
	g.Register(7, "conn-1")
	drain(registered)
	drain(anonymous)

	g.Broadcast(EventNewPost, map[string]string{"content": "welcome"})

	require.Len(t, drain(registered), 1)
	require.Len(t, drain(anonymous), 1)
}

func TestGatewayUnregisterCleansRooms(t *testing.T) {
	g := NewGateway()
	c := newTestClient("conn-1")
	other := newTestClient("conn-2")
	g.Connect(c)
	g.Connect(other)
	g.JoinGroup("conn-1", "room-a")
	g.JoinGroup("conn-2", "room-a")

	g.Unregister("conn-1")
	g.EmitToGroup("room-a", EventNewMessage, nil, "")

	assert.Empty(t, drain(c))
	require.Len(t, drain(other), 1)
}
