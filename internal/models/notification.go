package models

import "time"

// Notification types. Closed set; anything else is rejected at the fan-out
// boundary.
const (
	NotificationTypeLike           = "like"
	NotificationTypeComment        = "comment"
	NotificationTypeShare          = "share"
	NotificationTypeEventInvite    = "event-invite"
	NotificationTypeEventReminder  = "event-reminder"
	NotificationTypeGroupInvite    = "group-invite"
	NotificationTypeGroupRequest   = "group-request"
	NotificationTypePrayerResponse = "prayer-response"
	NotificationTypeMessage        = "message"
	NotificationTypeAnnouncement   = "announcement"
	NotificationTypeMention        = "mention"
)

// ValidNotificationType reports whether t is one of the known type tags.
func ValidNotificationType(t string) bool {
	switch t {
	case NotificationTypeLike, NotificationTypeComment, NotificationTypeShare,
		NotificationTypeEventInvite, NotificationTypeEventReminder,
		NotificationTypeGroupInvite, NotificationTypeGroupRequest,
		NotificationTypePrayerResponse, NotificationTypeMessage,
		NotificationTypeAnnouncement, NotificationTypeMention:
		return true
	}
	return false
}

// Notification is the durable per-recipient record (PostgreSQL). One row per
// recipient is written at the moment a triggering action completes; rows are
// only ever mutated to flip the read flag, or deleted by the recipient.
type Notification struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	RecipientID   uint       `json:"recipient_id" gorm:"index"`
	SenderID      uint       `json:"sender_id,omitempty" gorm:"index"`
	Type          string     `json:"type" gorm:"size:30;index"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	Link          string     `json:"link,omitempty"`
	RelatedPost   string     `json:"related_post,omitempty"`   // MongoDB ObjectID hex
	RelatedEvent  string     `json:"related_event,omitempty"`  // MongoDB ObjectID hex
	RelatedGroup  string     `json:"related_group,omitempty"`  // MongoDB ObjectID hex
	RelatedPrayer string     `json:"related_prayer,omitempty"` // MongoDB ObjectID hex
	IsRead        bool       `json:"is_read" gorm:"default:false;index"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at" gorm:"index"`
}

// NotificationPayload is the lightweight shape pushed over the live channel.
type NotificationPayload struct {
	Type          string `json:"type"`
	Title         string `json:"title"`
	Message       string `json:"message"`
	Link          string `json:"link,omitempty"`
	SenderID      uint   `json:"sender_id,omitempty"`
	RelatedPost   string `json:"related_post,omitempty"`
	RelatedEvent  string `json:"related_event,omitempty"`
	RelatedGroup  string `json:"related_group,omitempty"`
	RelatedPrayer string `json:"related_prayer,omitempty"`
}

// Payload returns the live-channel projection of the notification.
func (n *Notification) Payload() NotificationPayload {
	return NotificationPayload{
		Type:          n.Type,
		Title:         n.Title,
		Message:       n.Message,
		Link:          n.Link,
		SenderID:      n.SenderID,
		RelatedPost:   n.RelatedPost,
		RelatedEvent:  n.RelatedEvent,
		RelatedGroup:  n.RelatedGroup,
		RelatedPrayer: n.RelatedPrayer,
	}
}
