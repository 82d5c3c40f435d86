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

// GroupRepository defines the interface for group data operations
type GroupRepository interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroupByID(ctx context.Context, id string) (*models.Group, error)
	GetAllGroups(ctx context.Context, skip, limit int64) ([]models.Group, error)
	UpdateGroup(ctx context.Context, id string, group *models.Group) error
	DeleteGroup(ctx context.Context, id string) error
	AdjustMembersCount(ctx context.Context, groupID string, delta int) error
}

// MongoGroupRepository implements GroupRepository for MongoDB
type MongoGroupRepository struct {
	collection *mongo.Collection
}

// NewMongoGroupRepository creates a new MongoGroupRepository
func NewMongoGroupRepository(db *mongo.Database) *MongoGroupRepository {
	return &MongoGroupRepository{collection: db.Collection("groups")}
}

// CreateGroup creates a new group in MongoDB
func (r *MongoGroupRepository) CreateGroup(ctx context.Context, group *models.Group) error {
	group.ID = primitive.NewObjectID()
	group.CreatedAt = time.Now()
	group.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, group)
	return err
}

// GetGroupByID retrieves a group by ID from MongoDB
func (r *MongoGroupRepository) GetGroupByID(ctx context.Context, id string) (*models.Group, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid group ID format: %w", err)
	}

	var group models.Group
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&group)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("group not found")
		}
		return nil, err
	}
	return &group, nil
}

// GetAllGroups retrieves all groups with pagination
func (r *MongoGroupRepository) GetAllGroups(ctx context.Context, skip, limit int64) ([]models.Group, error) {
	var groups []models.Group
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// UpdateGroup updates an existing group in MongoDB
func (r *MongoGroupRepository) UpdateGroup(ctx context.Context, id string, group *models.Group) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid group ID format: %w", err)
	}

	group.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"name":        group.Name,
			"description": group.Description,
			"image_url":   group.ImageURL,
			"updated_at":  group.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("group not found")
	}
	return nil
}

// DeleteGroup deletes a group by ID from MongoDB
func (r *MongoGroupRepository) DeleteGroup(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid group ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("group not found")
	}
	return nil
}

// AdjustMembersCount changes the cached member counter on the group document
func (r *MongoGroupRepository) AdjustMembersCount(ctx context.Context, groupID string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(groupID)
	if err != nil {
		return fmt.Errorf("invalid group ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"members_count": delta}})
	return err
}
