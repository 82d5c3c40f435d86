package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event represents a church event stored in MongoDB
type Event struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CreatorID   uint               `json:"creator_id" bson:"creator_id"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Location    string             `json:"location,omitempty" bson:"location,omitempty"`
	StartsAt    time.Time          `json:"starts_at" bson:"starts_at"`
	EndsAt      time.Time          `json:"ends_at,omitempty" bson:"ends_at,omitempty"`
	ImageURL    string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	RSVPCount   int                `json:"rsvp_count" bson:"rsvp_count"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// EventRSVP records that a user plans to attend an event (PostgreSQL;
// EventID is a MongoDB ObjectID hex)
type EventRSVP struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	EventID   string    `json:"event_id" gorm:"index;uniqueIndex:idx_event_user_rsvp"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_event_user_rsvp"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateEventRequest defines the request body for creating an event
type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,min=2,max=120"`
	Description string    `json:"description" validate:"required,min=1,max=5000"`
	Location    string    `json:"location,omitempty" validate:"omitempty,max=200"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at,omitempty"`
	ImageURL    string    `json:"image_url,omitempty" validate:"omitempty,url"`
}

// UpdateEventRequest defines the request body for updating an event
type UpdateEventRequest struct {
	Title       string    `json:"title,omitempty" validate:"omitempty,min=2,max=120"`
	Description string    `json:"description,omitempty" validate:"omitempty,min=1,max=5000"`
	Location    string    `json:"location,omitempty" validate:"omitempty,max=200"`
	StartsAt    time.Time `json:"starts_at,omitempty"`
	EndsAt      time.Time `json:"ends_at,omitempty"`
	ImageURL    string    `json:"image_url,omitempty" validate:"omitempty,url"`
}
