package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/gracepointapp/church-connect/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConversationRepository defines the interface for conversation and message
// data operations
type ConversationRepository interface {
	CreateConversation(ctx context.Context, conversation *models.Conversation) error
	GetConversationByID(ctx context.Context, id string) (*models.Conversation, error)
	GetConversationsByUserID(ctx context.Context, userID uint) ([]models.Conversation, error)
	// SetLastMessage bumps the conversation's last-message pointer after a
	// message is persisted.
	SetLastMessage(ctx context.Context, conversationID string, content string, at time.Time) error
	CreateMessage(ctx context.Context, message *models.Message) error
	GetMessagesByConversationID(ctx context.Context, conversationID string, skip, limit int64) ([]models.Message, error)
	MarkMessageRead(ctx context.Context, messageID string) error
}

// MongoConversationRepository implements ConversationRepository for MongoDB
type MongoConversationRepository struct {
	conversations *mongo.Collection
	messages      *mongo.Collection
}

// NewMongoConversationRepository creates a new MongoConversationRepository
func NewMongoConversationRepository(db *mongo.Database) *MongoConversationRepository {
	return &MongoConversationRepository{
		conversations: db.Collection("conversations"),
		messages:      db.Collection("messages"),
	}
}

// CreateConversation creates a new conversation in MongoDB
func (r *MongoConversationRepository) CreateConversation(ctx context.Context, conversation *models.Conversation) error {
	conversation.ID = primitive.NewObjectID()
	conversation.CreatedAt = time.Now()
	conversation.UpdatedAt = time.Now()
	_, err := r.conversations.InsertOne(ctx, conversation)
	return err
}

// GetConversationByID retrieves a conversation by ID from MongoDB
func (r *MongoConversationRepository) GetConversationByID(ctx context.Context, id string) (*models.Conversation, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid conversation ID format: %w", err)
	}

	var conversation models.Conversation
	err = r.conversations.FindOne(ctx, bson.M{"_id": objID}).Decode(&conversation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("conversation not found")
		}
		return nil, err
	}
	return &conversation, nil
}

// GetConversationsByUserID retrieves the conversations a user participates in,
// most recently active first
func (r *MongoConversationRepository) GetConversationsByUserID(ctx context.Context, userID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	findOptions := options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}})
	cursor, err := r.conversations.Find(ctx, bson.M{"participant_ids": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// SetLastMessage updates the conversation's last-message pointer
func (r *MongoConversationRepository) SetLastMessage(ctx context.Context, conversationID string, content string, at time.Time) error {
	objID, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return fmt.Errorf("invalid conversation ID format: %w", err)
	}
	update := bson.M{
		"$set": bson.M{
			"last_message":    content,
			"last_message_at": at,
			"updated_at":      at,
		},
	}
	_, err = r.conversations.UpdateOne(ctx, bson.M{"_id": objID}, update)
	return err
}

// CreateMessage creates a new message in MongoDB
func (r *MongoConversationRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()
	_, err := r.messages.InsertOne(ctx, message)
	return err
}

// GetMessagesByConversationID retrieves a conversation's messages, oldest first
func (r *MongoConversationRepository) GetMessagesByConversationID(ctx context.Context, conversationID string, skip, limit int64) ([]models.Message, error) {
	objID, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return nil, fmt.Errorf("invalid conversation ID format: %w", err)
	}

	var messages []models.Message
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.messages.Find(ctx, bson.M{"conversation_id": objID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkMessageRead flips the read flag on a single message
func (r *MongoConversationRepository) MarkMessageRead(ctx context.Context, messageID string) error {
	objID, err := primitive.ObjectIDFromHex(messageID)
	if err != nil {
		return fmt.Errorf("invalid message ID format: %w", err)
	}
	_, err = r.messages.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"is_read": true}})
	return err
}
