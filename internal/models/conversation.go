package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation represents a direct-message thread stored in MongoDB.
// ParticipantIDs are PostgreSQL user ids.
type Conversation struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ParticipantIDs []uint             `json:"participant_ids" bson:"participant_ids"`
	LastMessage    string             `json:"last_message,omitempty" bson:"last_message,omitempty"`
	LastMessageAt  time.Time          `json:"last_message_at,omitempty" bson:"last_message_at,omitempty"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// HasParticipant reports whether userID is part of the conversation.
func (c *Conversation) HasParticipant(userID uint) bool {
	for _, id := range c.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Message represents a single chat message stored in MongoDB
type Message struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ConversationID primitive.ObjectID `json:"conversation_id" bson:"conversation_id"`
	SenderID       uint               `json:"sender_id" bson:"sender_id"`
	Content        string             `json:"content" bson:"content"`
	IsRead         bool               `json:"is_read" bson:"is_read"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
}

// CreateConversationRequest defines the request body for starting a conversation
type CreateConversationRequest struct {
	ParticipantIDs []uint `json:"participant_ids" validate:"required,min=1,dive,required"`
}

// SendMessageRequest defines the request body for sending a message
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}
