package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsElevatedRole(t *testing.T) {
	assert.True(t, IsElevatedRole(RoleStaff))
	assert.True(t, IsElevatedRole(RolePastor))
	assert.True(t, IsElevatedRole(RoleAdmin))
	assert.False(t, IsElevatedRole(RoleMember))
	assert.False(t, IsElevatedRole(""))
	assert.False(t, IsElevatedRole("Staff"), "role comparison is case-sensitive")
}

func TestValidNotificationType(t *testing.T) {
	for _, typ := range []string{
		NotificationTypeLike, NotificationTypeComment, NotificationTypeShare,
		NotificationTypeEventInvite, NotificationTypeEventReminder,
		NotificationTypeGroupInvite, NotificationTypeGroupRequest,
		NotificationTypePrayerResponse, NotificationTypeMessage,
		NotificationTypeAnnouncement, NotificationTypeMention,
	} {
		assert.True(t, ValidNotificationType(typ), typ)
	}
	assert.False(t, ValidNotificationType("poke"))
	assert.False(t, ValidNotificationType("Like"), "type tags are case-sensitive")
	assert.False(t, ValidNotificationType(""))
}

func TestNotificationPayloadProjection(t *testing.T) {
	n := Notification{
		RecipientID: 9,
		SenderID:    7,
		Type:        NotificationTypeLike,
		Title:       "New like",
		Message:     "Someone liked your post",
		Link:        "/posts/abc",
		RelatedPost: "abc",
		IsRead:      true,
	}

	p := n.Payload()
	assert.Equal(t, NotificationTypeLike, p.Type)
	assert.Equal(t, uint(7), p.SenderID)
	assert.Equal(t, "abc", p.RelatedPost)
}

func TestConversationHasParticipant(t *testing.T) {
	c := Conversation{ParticipantIDs: []uint{3, 9}}
	assert.True(t, c.HasParticipant(3))
	assert.True(t, c.HasParticipant(9))
	assert.False(t, c.HasParticipant(7))
}
