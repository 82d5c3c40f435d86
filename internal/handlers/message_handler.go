package handlers

import (
	"log"
	"net/http"

	"github.com/gracepointapp/church-connect/backend/internal/models"
	"github.com/gracepointapp/church-connect/backend/internal/notify"
	"github.com/gracepointapp/church-connect/backend/internal/realtime"
	"github.com/gracepointapp/church-connect/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// MessageHandler handles HTTP requests related to direct messages
type MessageHandler struct {
	conversationRepository repositories.ConversationRepository
	fanout                 *notify.Fanout
	gateway                *realtime.Gateway
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(conversationRepo repositories.ConversationRepository, fanout *notify.Fanout, gateway *realtime.Gateway) *MessageHandler {
	return &MessageHandler{
		conversationRepository: conversationRepo,
		fanout:                 fanout,
		gateway:                gateway,
	}
}

// RegisterMessageRoutes registers messaging-related routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/conversations", h.CreateConversation)
	g.GET("/conversations", h.GetConversations)
	g.GET("/conversations/:id/messages", h.GetMessages)
	g.POST("/conversations/:id/messages", h.SendMessage)
	g.PUT("/messages/:id/read", h.MarkMessageRead)
}

// CreateConversation starts a conversation including the caller
func (h *MessageHandler) CreateConversation(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateConversationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	participants := req.ParticipantIDs
	hasCaller := false
	for _, id := range participants {
		if id == claims.UserID {
			hasCaller = true
			break
		}
	}
	if !hasCaller {
		participants = append(participants, claims.UserID)
	}

	conversation := &models.Conversation{ParticipantIDs: participants}
	if err := h.conversationRepository.CreateConversation(c.Request().Context(), conversation); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, conversation)
}

// GetConversations lists the caller's conversations, most recently active first
func (h *MessageHandler) GetConversations(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	conversations, err := h.conversationRepository.GetConversationsByUserID(c.Request().Context(), claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, conversations)
}

// GetMessages retrieves a conversation's messages, participants only
func (h *MessageHandler) GetMessages(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	conversationID := c.Param("id")

	conversation, err := h.conversationRepository.GetConversationByID(c.Request().Context(), conversationID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Conversation not found")
	}
	if !conversation.HasParticipant(claims.UserID) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not part of this conversation")
	}

	page, limit := paginationParams(c, 50)
	skip := int64((page - 1) * limit)

	messages, err := h.conversationRepository.GetMessagesByConversationID(c.Request().Context(), conversationID, skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, messages)
}

// SendMessage persists a message and delivers it on two channels: the
// conversation room gets the message itself, and each other participant gets a
// durable notification on their personal channel. A recipient watching the
// room still receives both.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	conversationID := c.Param("id")

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	conversation, err := h.conversationRepository.GetConversationByID(c.Request().Context(), conversationID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Conversation not found")
	}
	if !conversation.HasParticipant(claims.UserID) {
		return echo.NewHTTPError(http.StatusForbidden, "You are not part of this conversation")
	}

	message := &models.Message{
		ConversationID: conversation.ID,
		SenderID:       claims.UserID,
		Content:        req.Content,
	}
	if err := h.conversationRepository.CreateMessage(c.Request().Context(), message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// The conversation's last-message pointer orders the inbox; update it
	// before telling anyone about the message. A failure here leaves the
	// pointer stale but the message is already durable, so don't fail the
	// request over it.
	if err := h.conversationRepository.SetLastMessage(c.Request().Context(), conversationID, message.Content, message.CreatedAt); err != nil {
		log.Printf("messages: last-message update for conversation %s failed: %v", conversationID, err)
	}

	h.gateway.EmitToGroup(conversationID, realtime.EventNewMessage, message, "")
	h.fanout.NotifyParticipants(conversation.ParticipantIDs, notify.Input{
		SenderID: claims.UserID,
		Type:     models.NotificationTypeMessage,
		Title:    "New message",
		Message:  truncate(message.Content, 140),
		Link:     "/conversations/" + conversationID,
	})

	return c.JSON(http.StatusCreated, message)
}

// MarkMessageRead flips the read flag on a single message
func (h *MessageHandler) MarkMessageRead(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.conversationRepository.MarkMessageRead(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
