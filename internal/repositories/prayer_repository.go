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

// PrayerRepository defines the interface for prayer request data operations
type PrayerRepository interface {
	CreatePrayer(ctx context.Context, prayer *models.Prayer) error
	GetPrayerByID(ctx context.Context, id string) (*models.Prayer, error)
	GetAllPrayers(ctx context.Context, skip, limit int64) ([]models.Prayer, error)
	UpdatePrayer(ctx context.Context, id string, prayer *models.Prayer) error
	DeletePrayer(ctx context.Context, id string) error
	AdjustResponsesCount(ctx context.Context, prayerID string, delta int) error
}

// MongoPrayerRepository implements PrayerRepository for MongoDB
type MongoPrayerRepository struct {
	collection *mongo.Collection
}

// NewMongoPrayerRepository creates a new MongoPrayerRepository
func NewMongoPrayerRepository(db *mongo.Database) *MongoPrayerRepository {
	return &MongoPrayerRepository{collection: db.Collection("prayers")}
}

// CreatePrayer creates a new prayer request in MongoDB
func (r *MongoPrayerRepository) CreatePrayer(ctx context.Context, prayer *models.Prayer) error {
	prayer.ID = primitive.NewObjectID()
	prayer.CreatedAt = time.Now()
	prayer.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, prayer)
	return err
}

// GetPrayerByID retrieves a prayer request by ID from MongoDB
func (r *MongoPrayerRepository) GetPrayerByID(ctx context.Context, id string) (*models.Prayer, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid prayer ID format: %w", err)
	}

	var prayer models.Prayer
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&prayer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("prayer not found")
		}
		return nil, err
	}
	return &prayer, nil
}

// GetAllPrayers retrieves prayer requests, newest first
func (r *MongoPrayerRepository) GetAllPrayers(ctx context.Context, skip, limit int64) ([]models.Prayer, error) {
	var prayers []models.Prayer
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &prayers); err != nil {
		return nil, err
	}
	return prayers, nil
}

// UpdatePrayer updates an existing prayer request in MongoDB
func (r *MongoPrayerRepository) UpdatePrayer(ctx context.Context, id string, prayer *models.Prayer) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid prayer ID format: %w", err)
	}

	prayer.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":       prayer.Title,
			"content":     prayer.Content,
			"is_answered": prayer.IsAnswered,
			"updated_at":  prayer.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("prayer not found")
	}
	return nil
}

// DeletePrayer deletes a prayer request by ID from MongoDB
func (r *MongoPrayerRepository) DeletePrayer(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid prayer ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("prayer not found")
	}
	return nil
}

// AdjustResponsesCount changes the cached response counter on the prayer document
func (r *MongoPrayerRepository) AdjustResponsesCount(ctx context.Context, prayerID string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(prayerID)
	if err != nil {
		return fmt.Errorf("invalid prayer ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"responses_count": delta}})
	return err
}
