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

// LiveStreamRepository defines the interface for live stream data operations
type LiveStreamRepository interface {
	CreateStream(ctx context.Context, stream *models.LiveStream) error
	GetStreamByID(ctx context.Context, id string) (*models.LiveStream, error)
	GetLiveStreams(ctx context.Context) ([]models.LiveStream, error)
	GetRecentStreams(ctx context.Context, skip, limit int64) ([]models.LiveStream, error)
	EndStream(ctx context.Context, id string) error
	AdjustViewerCount(ctx context.Context, id string, delta int) error
}

// MongoLiveStreamRepository implements LiveStreamRepository for MongoDB
type MongoLiveStreamRepository struct {
	collection *mongo.Collection
}

// NewMongoLiveStreamRepository creates a new MongoLiveStreamRepository
func NewMongoLiveStreamRepository(db *mongo.Database) *MongoLiveStreamRepository {
	return &MongoLiveStreamRepository{collection: db.Collection("livestreams")}
}

// CreateStream creates a new live stream record in MongoDB
func (r *MongoLiveStreamRepository) CreateStream(ctx context.Context, stream *models.LiveStream) error {
	stream.ID = primitive.NewObjectID()
	stream.IsLive = true
	stream.StartedAt = time.Now()
	stream.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, stream)
	return err
}

// GetStreamByID retrieves a live stream by ID from MongoDB
func (r *MongoLiveStreamRepository) GetStreamByID(ctx context.Context, id string) (*models.LiveStream, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid stream ID format: %w", err)
	}

	var stream models.LiveStream
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&stream)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("stream not found")
		}
		return nil, err
	}
	return &stream, nil
}

// GetLiveStreams retrieves streams currently marked live
func (r *MongoLiveStreamRepository) GetLiveStreams(ctx context.Context) ([]models.LiveStream, error) {
	var streams []models.LiveStream
	cursor, err := r.collection.Find(ctx, bson.M{"is_live": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &streams); err != nil {
		return nil, err
	}
	return streams, nil
}

// GetRecentStreams retrieves past streams, newest first
func (r *MongoLiveStreamRepository) GetRecentStreams(ctx context.Context, skip, limit int64) ([]models.LiveStream, error) {
	var streams []models.LiveStream
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "started_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &streams); err != nil {
		return nil, err
	}
	return streams, nil
}

// EndStream marks a stream as finished
func (r *MongoLiveStreamRepository) EndStream(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid stream ID format: %w", err)
	}
	update := bson.M{"$set": bson.M{"is_live": false, "ended_at": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("stream not found")
	}
	return nil
}

// AdjustViewerCount changes the cached viewer counter
func (r *MongoLiveStreamRepository) AdjustViewerCount(ctx context.Context, id string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid stream ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"viewer_count": delta}})
	return err
}
