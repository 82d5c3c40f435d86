package realtime

import "encoding/json"

// Events delivered to clients. Names are case-sensitive and part of the wire
// contract.
const (
	EventUserStatusChange   = "user-status-change"
	EventNewNotification    = "new-notification"
	EventNewPost            = "new-post"
	EventPostDeleted        = "post-deleted"
	EventPostLiked          = "post-liked"
	EventNewComment         = "new-comment"
	EventCommentDeleted     = "comment-deleted"
	EventEventDeleted       = "event-deleted"
	EventSermonDeleted      = "sermon-deleted"
	EventNewMessage         = "new-message"
	EventUserTyping         = "user-typing"
	EventUserStopTyping     = "user-stop-typing"
	EventMessageReadReceipt = "message-read-receipt"
	EventStreamStarted      = "stream-started"
	EventStreamEnded        = "stream-ended"
)

// Events emitted by clients to the gateway.
const (
	ClientEventUserOnline        = "user-online"
	ClientEventJoinConversation  = "join-conversation"
	ClientEventLeaveConversation = "leave-conversation"
	ClientEventTypingStart       = "typing-start"
	ClientEventTypingStop        = "typing-stop"
	ClientEventMessageRead       = "message-read"
	ClientEventSendNotification  = "send-notification"
)

// Envelope is the wire frame for both directions: an event name plus an
// event-specific JSON payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// outbound is a queued delivery; the payload is marshalled by the write pump.
type outbound struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"data,omitempty"`
}

// StatusPayload is broadcast on register/unregister.
type StatusPayload struct {
	UserID uint   `json:"user_id"`
	Status string `json:"status"` // online or offline
}
