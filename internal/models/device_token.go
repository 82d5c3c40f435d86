package models

import "time"

// DeviceToken stores an FCM registration token for push delivery (PostgreSQL).
// Tokens are a second best-effort channel beside the socket emit.
type DeviceToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Token     string    `json:"token" gorm:"uniqueIndex"`
	Platform  string    `json:"platform" gorm:"size:10"` // ios, android, web
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
