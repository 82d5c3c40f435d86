package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelope(t *testing.T, event string, payload interface{}) Envelope {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return Envelope{Event: event, Data: data}
}

func TestHandleEventUserOnline(t *testing.T) {
	g := NewGateway()
	h := NewSocketHandler(g)
	c := newTestClient("conn-1")
	g.Connect(c)

	h.HandleEvent(c, envelope(t, ClientEventUserOnline, userOnlinePayload{UserID: 7}))

	connID, ok := g.UserConnection(7)
	require.True(t, ok)
	assert.Equal(t, "conn-1", connID)
}

func TestHandleEventUserOnlineRejectsZeroID(t *testing.T) {
	g := NewGateway()
	h := NewSocketHandler(g)
	c := newTestClient("conn-1")
	g.Connect(c)

	h.HandleEvent(c, envelope(t, ClientEventUserOnline, userOnlinePayload{UserID: 0}))
	h.HandleEvent(c, Envelope{Event: ClientEventUserOnline, Data: []byte("not json")})

	_, ok := g.UserConnection(0)
	assert.False(t, ok)
}

func TestHandleEventConversationJoinLeave(t *testing.T) {
	g := NewGateway()
	h := NewSocketHandler(g)
	c := newTestClient("conn-1")
	peer := newTestClient("conn-2")
	g.Connect(c)
	g.Connect(peer)

	h.HandleEvent(c, envelope(t, ClientEventJoinConversation, conversationPayload{ConversationID: "abc"}))
	h.HandleEvent(peer, envelope(t, ClientEventJoinConversation, conversationPayload{ConversationID: "abc"}))

	g.EmitToGroup("abc", EventNewMessage, nil, "")
	require.Len(t, drain(c), 1)
	require.Len(t, drain(peer), 1)

	h.HandleEvent(c, envelope(t, ClientEventLeaveConversation, conversationPayload{ConversationID: "abc"}))
	g.EmitToGroup("abc", EventNewMessage, nil, "")
	assert.Empty(t, drain(c))
	require.Len(t, drain(peer), 1)
}

func TestHandleEventTypingRelayExcludesSender(t *testing.T) {
	g := NewGateway()
	h := NewSocketHandler(g)
	sender := newTestClient("conn-1")
	peer := newTestClient("conn-2")
	g.Connect(sender)
	g.Connect(peer)
	g.JoinGroup("conn-1", "abc")
	g.JoinGroup("conn-2", "abc")

	h.HandleEvent(sender, envelope(t, ClientEventTypingStart, typingPayload{ConversationID: "abc", UserID: 7}))
	h.HandleEvent(sender, envelope(t, ClientEventTypingStop, typingPayload{ConversationID: "abc", UserID: 7}))

	assert.Empty(t, drain(sender))
	assert.Equal(t, []string{EventUserTyping, EventUserStopTyping}, eventNames(drain(peer)))
}

func TestHandleEventMessageReadRelay(t *testing.T) {
	g := NewGateway()
	h := NewSocketHandler(g)
	reader := newTestClient("conn-1")
	peer := newTestClient("conn-2")
	g.Connect(reader)
	g.Connect(peer)
	g.JoinGroup("conn-1", "abc")
	g.JoinGroup("conn-2", "abc")

	h.HandleEvent(reader, envelope(t, ClientEventMessageRead, messageReadPayload{ConversationID: "abc", MessageID: "m1", UserID: 7}))

	assert.Empty(t, drain(reader))
	events := drain(peer)
	require.Len(t, events, 1)
	assert.Equal(t, EventMessageReadReceipt, events[0].Event)
}

func TestHandleEventSendNotificationRelay(t *testing.T) {
	g := NewGateway()
	h := NewSocketHandler(g)
	sender := newTestClient("conn-1")
	recipient := newTestClient("conn-2")
	g.Connect(sender)
	g.Connect(recipient)
	g.Register(9, "conn-2")
	drain(sender)
	drain(recipient)

	h.HandleEvent(sender, envelope(t, ClientEventSendNotification, map[string]interface{}{
		"recipient_id": 9,
		"notification": map[string]string{"title": "nudge"},
	}))

	events := drain(recipient)
	require.Len(t, events, 1)
	assert.Equal(t, EventNewNotification, events[0].Event)
	assert.Empty(t, drain(sender))
}

func TestHandleEventUnknownEventIgnored(t *testing.T) {
	g := NewGateway()
	h := NewSocketHandler(g)
	c := newTestClient("conn-1")
	g.Connect(c)

	h.HandleEvent(c, Envelope{Event: "no-such-event"})
	assert.Empty(t, drain(c))
}
