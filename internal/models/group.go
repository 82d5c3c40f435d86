package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group membership statuses
const (
	MembershipInvited   = "invited"
	MembershipRequested = "requested"
	MembershipMember    = "member"
)

// Group represents a small group / ministry stored in MongoDB
type Group struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	LeaderID     uint               `json:"leader_id" bson:"leader_id"`
	Name         string             `json:"name" bson:"name"`
	Description  string             `json:"description" bson:"description"`
	ImageURL     string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	IsPrivate    bool               `json:"is_private" bson:"is_private"`
	MembersCount int                `json:"members_count" bson:"members_count"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// GroupMembership tracks invite/request/member state for a user and a group
// (PostgreSQL; GroupID is a MongoDB ObjectID hex)
type GroupMembership struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	GroupID   string    `json:"group_id" gorm:"index;uniqueIndex:idx_group_user_membership"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_group_user_membership"`
	Status    string    `json:"status" gorm:"size:20;index"` // invited, requested, member
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateGroupRequest defines the request body for creating a group
type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=80"`
	Description string `json:"description" validate:"required,min=1,max=2000"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url"`
	IsPrivate   bool   `json:"is_private"`
}

// UpdateGroupRequest defines the request body for updating a group
type UpdateGroupRequest struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=2,max=80"`
	Description string `json:"description,omitempty" validate:"omitempty,min=1,max=2000"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// InviteMemberRequest defines the request body for inviting a user to a group
type InviteMemberRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}
