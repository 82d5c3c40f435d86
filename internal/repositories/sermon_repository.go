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

// SermonRepository defines the interface for sermon data operations
type SermonRepository interface {
	CreateSermon(ctx context.Context, sermon *models.Sermon) error
	GetSermonByID(ctx context.Context, id string) (*models.Sermon, error)
	GetAllSermons(ctx context.Context, skip, limit int64) ([]models.Sermon, error)
	UpdateSermon(ctx context.Context, id string, sermon *models.Sermon) error
	DeleteSermon(ctx context.Context, id string) error
}

// MongoSermonRepository implements SermonRepository for MongoDB
type MongoSermonRepository struct {
	collection *mongo.Collection
}

// NewMongoSermonRepository creates a new MongoSermonRepository
func NewMongoSermonRepository(db *mongo.Database) *MongoSermonRepository {
	return &MongoSermonRepository{collection: db.Collection("sermons")}
}

// CreateSermon creates a new sermon in MongoDB
func (r *MongoSermonRepository) CreateSermon(ctx context.Context, sermon *models.Sermon) error {
	sermon.ID = primitive.NewObjectID()
	sermon.CreatedAt = time.Now()
	sermon.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, sermon)
	return err
}

// GetSermonByID retrieves a sermon by ID from MongoDB
func (r *MongoSermonRepository) GetSermonByID(ctx context.Context, id string) (*models.Sermon, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid sermon ID format: %w", err)
	}

	var sermon models.Sermon
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&sermon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("sermon not found")
		}
		return nil, err
	}
	return &sermon, nil
}

// GetAllSermons retrieves sermons, most recently preached first
func (r *MongoSermonRepository) GetAllSermons(ctx context.Context, skip, limit int64) ([]models.Sermon, error) {
	var sermons []models.Sermon
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "preached_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &sermons); err != nil {
		return nil, err
	}
	return sermons, nil
}

// UpdateSermon updates an existing sermon in MongoDB
func (r *MongoSermonRepository) UpdateSermon(ctx context.Context, id string, sermon *models.Sermon) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid sermon ID format: %w", err)
	}

	sermon.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":       sermon.Title,
			"speaker":     sermon.Speaker,
			"description": sermon.Description,
			"scripture":   sermon.Scripture,
			"video_url":   sermon.VideoURL,
			"audio_url":   sermon.AudioURL,
			"updated_at":  sermon.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("sermon not found")
	}
	return nil
}

// DeleteSermon deletes a sermon by ID from MongoDB
func (r *MongoSermonRepository) DeleteSermon(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid sermon ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("sermon not found")
	}
	return nil
}
