package realtime

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SocketHandler upgrades HTTP connections and dispatches client events to the
// gateway.
type SocketHandler struct {
	gateway *Gateway
}

// NewSocketHandler creates a new SocketHandler
func NewSocketHandler(gateway *Gateway) *SocketHandler {
	return &SocketHandler{gateway: gateway}
}

// ServeWS handles the websocket endpoint. The connection enters anonymous
// state; the client sends user-online to register.
func (h *SocketHandler) ServeWS(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("realtime: upgrade failed: %v", err)
		return err
	}

	client := NewClient(uuid.NewString(), conn)
	h.gateway.Connect(client)

	go client.WritePump()
	go client.ReadPump(h.gateway, h.HandleEvent)

	return nil
}

type userOnlinePayload struct {
	UserID uint `json:"user_id"`
}

type conversationPayload struct {
	ConversationID string `json:"conversation_id"`
}

type typingPayload struct {
	ConversationID string `json:"conversation_id"`
	UserID         uint   `json:"user_id"`
	Name           string `json:"name"`
}

type messageReadPayload struct {
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
	UserID         uint   `json:"user_id"`
}

type sendNotificationPayload struct {
	RecipientID  uint            `json:"recipient_id"`
	Notification json.RawMessage `json:"notification"`
}

// HandleEvent routes one client envelope. Unknown events and malformed
// payloads are dropped; the socket protocol has no error replies.
func (h *SocketHandler) HandleEvent(client *Client, env Envelope) {
	switch env.Event {
	case ClientEventUserOnline:
		var p userOnlinePayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.UserID == 0 {
			return
		}
		h.gateway.Register(p.UserID, client.ID)

	case ClientEventJoinConversation:
		var p conversationPayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.ConversationID == "" {
			return
		}
		h.gateway.JoinGroup(client.ID, p.ConversationID)

	case ClientEventLeaveConversation:
		var p conversationPayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.ConversationID == "" {
			return
		}
		h.gateway.LeaveGroup(client.ID, p.ConversationID)

	case ClientEventTypingStart:
		var p typingPayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.ConversationID == "" {
			return
		}
		h.gateway.EmitToGroup(p.ConversationID, EventUserTyping, p, client.ID)

	case ClientEventTypingStop:
		var p typingPayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.ConversationID == "" {
			return
		}
		h.gateway.EmitToGroup(p.ConversationID, EventUserStopTyping, p, client.ID)

	case ClientEventMessageRead:
		var p messageReadPayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.ConversationID == "" {
			return
		}
		h.gateway.EmitToGroup(p.ConversationID, EventMessageReadReceipt, p, client.ID)

	case ClientEventSendNotification:
		// Direct client-to-client relay; bypasses the durable fan-out path.
		var p sendNotificationPayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.RecipientID == 0 {
			return
		}
		h.gateway.EmitToUser(p.RecipientID, EventNewNotification, p.Notification)

	default:
		log.Printf("realtime: unknown client event %q from %s", env.Event, client.ID)
	}
}
