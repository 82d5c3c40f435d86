package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prayer represents a prayer request stored in MongoDB
type Prayer struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID       uint               `json:"author_id" bson:"author_id"`
	Title          string             `json:"title" bson:"title"`
	Content        string             `json:"content" bson:"content"`
	IsAnonymous    bool               `json:"is_anonymous" bson:"is_anonymous"`
	IsAnswered     bool               `json:"is_answered" bson:"is_answered"`
	ResponsesCount int                `json:"responses_count" bson:"responses_count"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

// PrayerResponse records that a user prayed for a request (PostgreSQL;
// PrayerID is a MongoDB ObjectID hex). One row per user per prayer.
type PrayerResponse struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PrayerID  string    `json:"prayer_id" gorm:"index;uniqueIndex:idx_prayer_user_response"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_prayer_user_response"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePrayerRequest defines the request body for creating a prayer request
type CreatePrayerRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=120"`
	Content     string `json:"content" validate:"required,min=1,max=3000"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// UpdatePrayerRequest defines the request body for updating a prayer request
type UpdatePrayerRequest struct {
	Title      string `json:"title,omitempty" validate:"omitempty,min=2,max=120"`
	Content    string `json:"content,omitempty" validate:"omitempty,min=1,max=3000"`
	IsAnswered *bool  `json:"is_answered,omitempty"`
}
