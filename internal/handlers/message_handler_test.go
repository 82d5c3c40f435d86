package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gracepointapp/church-connect/backend/internal/models"
	"github.com/gracepointapp/church-connect/backend/internal/notify"
	"github.com/gracepointapp/church-connect/backend/internal/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubConversationRepo struct {
	conversation *models.Conversation

	lastMessageSet    bool
	lastMessage       string
	lastMessageCtxErr error
}

func (s *stubConversationRepo) CreateConversation(context.Context, *models.Conversation) error {
	return nil
}

func (s *stubConversationRepo) GetConversationByID(context.Context, string) (*models.Conversation, error) {
	return s.conversation, nil
}

func (s *stubConversationRepo) GetConversationsByUserID(context.Context, uint) ([]models.Conversation, error) {
	return nil, nil
}

func (s *stubConversationRepo) SetLastMessage(ctx context.Context, conversationID, content string, at time.Time) error {
	s.lastMessageSet = true
	s.lastMessage = content
	s.lastMessageCtxErr = ctx.Err()
	return nil
}

func (s *stubConversationRepo) CreateMessage(ctx context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()
	return nil
}

func (s *stubConversationRepo) GetMessagesByConversationID(context.Context, string, int64, int64) ([]models.Message, error) {
	return nil, nil
}

func (s *stubConversationRepo) MarkMessageRead(context.Context, string) error { return nil }

// The HTTP server cancels the request context the moment the handler returns,
// so the last-message pointer has to be updated before that, on a context that
// is still alive. A lost update leaves the inbox ordered by stale data.
func TestSendMessageUpdatesLastMessageBeforeResponding(t *testing.T) {
	convID := primitive.NewObjectID()
	convo := &stubConversationRepo{
		conversation: &models.Conversation{ID: convID, ParticipantIDs: []uint{7, 9}},
	}
	fanout := notify.NewFanout(&stubNotificationRepo{}, &stubRecipientLister{}, &stubEmitter{}, nil)
	h := NewMessageHandler(convo, fanout, realtime.NewGateway())

	c, rec := newHandlerContext(http.MethodPost, "/api/v1/conversations/"+convID.Hex()+"/messages",
		`{"content":"hello"}`, &models.JwtCustomClaims{UserID: 7})
	c.SetParamNames("id")
	c.SetParamValues(convID.Hex())

	ctx, cancel := context.WithCancel(context.Background())
	c.SetRequest(c.Request().WithContext(ctx))

	require.NoError(t, h.SendMessage(c))
	cancel()

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, convo.lastMessageSet, "last-message pointer must be updated before the response goes out")
	assert.NoError(t, convo.lastMessageCtxErr, "update must run while the request context is still alive")
	assert.Equal(t, "hello", convo.lastMessage)
}

func TestSendMessageNotifiesOtherParticipants(t *testing.T) {
	convID := primitive.NewObjectID()
	convo := &stubConversationRepo{
		conversation: &models.Conversation{ID: convID, ParticipantIDs: []uint{7, 9, 11}},
	}
	notifs := &stubNotificationRepo{}
	fanout := notify.NewFanout(notifs, &stubRecipientLister{}, &stubEmitter{}, nil)
	h := NewMessageHandler(convo, fanout, realtime.NewGateway())

	c, _ := newHandlerContext(http.MethodPost, "/api/v1/conversations/"+convID.Hex()+"/messages",
		`{"content":"hello"}`, &models.JwtCustomClaims{UserID: 7})
	c.SetParamNames("id")
	c.SetParamValues(convID.Hex())

	require.NoError(t, h.SendMessage(c))

	require.Len(t, notifs.created, 2, "sender must not notify themselves")
	for _, n := range notifs.created {
		assert.Equal(t, models.NotificationTypeMessage, n.Type)
		assert.NotEqual(t, uint(7), n.RecipientID)
	}
}
