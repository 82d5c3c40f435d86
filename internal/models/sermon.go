package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sermon represents a sermon recording stored in MongoDB
type Sermon struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UploaderID  uint               `json:"uploader_id" bson:"uploader_id"`
	Title       string             `json:"title" bson:"title"`
	Speaker     string             `json:"speaker" bson:"speaker"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Scripture   string             `json:"scripture,omitempty" bson:"scripture,omitempty"`
	VideoURL    string             `json:"video_url,omitempty" bson:"video_url,omitempty"`
	AudioURL    string             `json:"audio_url,omitempty" bson:"audio_url,omitempty"`
	PreachedAt  time.Time          `json:"preached_at" bson:"preached_at"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateSermonRequest defines the request body for creating a sermon
type CreateSermonRequest struct {
	Title       string    `json:"title" validate:"required,min=2,max=120"`
	Speaker     string    `json:"speaker" validate:"required,min=2,max=80"`
	Description string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	Scripture   string    `json:"scripture,omitempty" validate:"omitempty,max=200"`
	VideoURL    string    `json:"video_url,omitempty" validate:"omitempty,url"`
	AudioURL    string    `json:"audio_url,omitempty" validate:"omitempty,url"`
	PreachedAt  time.Time `json:"preached_at" validate:"required"`
}

// UpdateSermonRequest defines the request body for updating a sermon
type UpdateSermonRequest struct {
	Title       string `json:"title,omitempty" validate:"omitempty,min=2,max=120"`
	Speaker     string `json:"speaker,omitempty" validate:"omitempty,min=2,max=80"`
	Description string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Scripture   string `json:"scripture,omitempty" validate:"omitempty,max=200"`
	VideoURL    string `json:"video_url,omitempty" validate:"omitempty,url"`
	AudioURL    string `json:"audio_url,omitempty" validate:"omitempty,url"`
}
