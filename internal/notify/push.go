package notify

import (
	"context"
	"log"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/gracepointapp/church-connect/backend/internal/models"
	"github.com/gracepointapp/church-connect/backend/internal/repositories"
)

// PushSender delivers a notification payload to a user's registered devices.
// Same best-effort contract as the socket emit.
type PushSender interface {
	Send(userID uint, payload models.NotificationPayload)
}

// FCMPushSender sends notifications through Firebase Cloud Messaging.
type FCMPushSender struct {
	client *messaging.Client
	tokens repositories.DeviceTokenRepository
}

// NewFCMPushSender creates a new FCMPushSender
func NewFCMPushSender(client *messaging.Client, tokens repositories.DeviceTokenRepository) *FCMPushSender {
	return &FCMPushSender{client: client, tokens: tokens}
}

// Send pushes the payload to every device token registered for the user.
// Failures are logged and dropped; tokens FCM reports as dead are removed.
func (s *FCMPushSender) Send(userID uint, payload models.NotificationPayload) {
	tokens, err := s.tokens.GetTokensByUserID(userID)
	if err != nil {
		log.Printf("push: token lookup for user %d failed: %v", userID, err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Message,
		},
		Data: map[string]string{
			"type": payload.Type,
			"link": payload.Link,
		},
	}

	res, err := s.client.SendEachForMulticast(ctx, msg)
	if err != nil {
		log.Printf("push: send to user %d failed: %v", userID, err)
		return
	}

	for i, resp := range res.Responses {
		if resp.Success {
			continue
		}
		if messaging.IsRegistrationTokenNotRegistered(resp.Error) {
			if delErr := s.tokens.DeleteToken(tokens[i]); delErr != nil {
				log.Printf("push: failed to remove dead token: %v", delErr)
			}
		}
	}
}
