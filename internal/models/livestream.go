package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LiveStream represents a live service broadcast stored in MongoDB
type LiveStream struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	HostID      uint               `json:"host_id" bson:"host_id"`
	Title       string             `json:"title" bson:"title"`
	StreamURL   string             `json:"stream_url" bson:"stream_url"`
	IsLive      bool               `json:"is_live" bson:"is_live"`
	StartedAt   time.Time          `json:"started_at" bson:"started_at"`
	EndedAt     time.Time          `json:"ended_at,omitempty" bson:"ended_at,omitempty"`
	ViewerCount int                `json:"viewer_count" bson:"viewer_count"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// StartLiveStreamRequest defines the request body for starting a live stream
type StartLiveStreamRequest struct {
	Title     string `json:"title" validate:"required,min=2,max=120"`
	StreamURL string `json:"stream_url" validate:"required,url"`
}
