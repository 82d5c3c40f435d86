package models

import "gorm.io/gorm"

// Like represents a like on a post (PostgreSQL; PostID is a MongoDB ObjectID
// hex). Rows are deleted on unlike; re-liking creates a fresh row.
type Like struct {
	gorm.Model
	PostID string `json:"post_id" gorm:"index"`
	UserID uint   `json:"user_id" gorm:"index"`
}
