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

// EventRepository defines the interface for event data operations
type EventRepository interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
	GetUpcomingEvents(ctx context.Context, skip, limit int64) ([]models.Event, error)
	UpdateEvent(ctx context.Context, id string, event *models.Event) error
	DeleteEvent(ctx context.Context, id string) error
	AdjustRSVPCount(ctx context.Context, eventID string, delta int) error
}

// MongoEventRepository implements EventRepository for MongoDB
type MongoEventRepository struct {
	collection *mongo.Collection
}

// NewMongoEventRepository creates a new MongoEventRepository
func NewMongoEventRepository(db *mongo.Database) *MongoEventRepository {
	return &MongoEventRepository{collection: db.Collection("events")}
}

// CreateEvent creates a new event in MongoDB
func (r *MongoEventRepository) CreateEvent(ctx context.Context, event *models.Event) error {
	event.ID = primitive.NewObjectID()
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

// GetEventByID retrieves an event by ID from MongoDB
func (r *MongoEventRepository) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format: %w", err)
	}

	var event models.Event
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("event not found")
		}
		return nil, err
	}
	return &event, nil
}

// GetUpcomingEvents retrieves events starting from now, soonest first
func (r *MongoEventRepository) GetUpcomingEvents(ctx context.Context, skip, limit int64) ([]models.Event, error) {
	var events []models.Event
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "starts_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"starts_at": bson.M{"$gte": time.Now()}}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// UpdateEvent updates an existing event in MongoDB
func (r *MongoEventRepository) UpdateEvent(ctx context.Context, id string, event *models.Event) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid event ID format: %w", err)
	}

	event.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":       event.Title,
			"description": event.Description,
			"location":    event.Location,
			"starts_at":   event.StartsAt,
			"ends_at":     event.EndsAt,
			"image_url":   event.ImageURL,
			"updated_at":  event.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("event not found")
	}
	return nil
}

// DeleteEvent deletes an event by ID from MongoDB
func (r *MongoEventRepository) DeleteEvent(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid event ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("event not found")
	}
	return nil
}

// AdjustRSVPCount changes the cached RSVP counter on the event document
func (r *MongoEventRepository) AdjustRSVPCount(ctx context.Context, eventID string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return fmt.Errorf("invalid event ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"rsvp_count": delta}})
	return err
}
