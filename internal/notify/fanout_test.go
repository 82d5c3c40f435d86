package notify

import (
	"fmt"
	"testing"

	"github.com/gracepointapp/church-connect/backend/internal/models"
	"github.com/gracepointapp/church-connect/backend/internal/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	created     []models.Notification
	bulkCalls   int
	singleCalls int
	failCreate  bool
}

func (f *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	f.singleCalls++
	if f.failCreate {
		return fmt.Errorf("insert failed")
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationRepo) CreateNotifications(ns []models.Notification) error {
	f.bulkCalls++
	if f.failCreate {
		return fmt.Errorf("bulk insert failed")
	}
	f.created = append(f.created, ns...)
	return nil
}

func (f *fakeNotificationRepo) GetByRecipientID(uint, int, int) ([]models.Notification, int64, error) {
	return nil, 0, nil
}
func (f *fakeNotificationRepo) GetUnreadCount(uint) (int64, error)    { return 0, nil }
func (f *fakeNotificationRepo) MarkAsRead(uint, uint) error           { return nil }
func (f *fakeNotificationRepo) MarkAllAsRead(uint) error              { return nil }
func (f *fakeNotificationRepo) DeleteNotification(uint, uint) error   { return nil }

type fakeLister struct {
	ids        []uint
	activeOnly *bool
	err        error
}

func (f *fakeLister) GetAllUserIDs(excludeID uint, activeOnly bool) ([]uint, error) {
	f.activeOnly = &activeOnly
	if f.err != nil {
		return nil, f.err
	}
	out := make([]uint, 0, len(f.ids))
	for _, id := range f.ids {
		if id != excludeID {
			out = append(out, id)
		}
	}
	return out, nil
}

type emitted struct {
	userID  uint
	event   string
	payload interface{}
}

type fakeEmitter struct {
	emits      []emitted
	broadcasts []string
}

func (f *fakeEmitter) EmitToUser(userID uint, event string, payload interface{}) {
	f.emits = append(f.emits, emitted{userID: userID, event: event, payload: payload})
}

func (f *fakeEmitter) Broadcast(event string, payload interface{}) {
	f.broadcasts = append(f.broadcasts, event)
}

type fakePush struct {
	sent []uint
}

func (f *fakePush) Send(userID uint, payload models.NotificationPayload) {
	f.sent = append(f.sent, userID)
}

func newTestFanout() (*Fanout, *fakeNotificationRepo, *fakeLister, *fakeEmitter, *fakePush) {
	repo := &fakeNotificationRepo{}
	lister := &fakeLister{}
	emitter := &fakeEmitter{}
	push := &fakePush{}
	return NewFanout(repo, lister, emitter, push), repo, lister, emitter, push
}

func TestNotifyUserWritesRowAndEmits(t *testing.T) {
	f, repo, _, emitter, push := newTestFanout()

	f.NotifyUser(9, Input{
		SenderID:    7,
		Type:        models.NotificationTypeLike,
		Title:       "New like",
		Message:     "Someone liked your post",
		RelatedPost: "abc",
	})

	require.Len(t, repo.created, 1)
	assert.Equal(t, uint(9), repo.created[0].RecipientID)
	assert.Equal(t, uint(7), repo.created[0].SenderID)
	assert.Equal(t, models.NotificationTypeLike, repo.created[0].Type)
	assert.Equal(t, "abc", repo.created[0].RelatedPost)

	require.Len(t, emitter.emits, 1)
	assert.Equal(t, uint(9), emitter.emits[0].userID)
	assert.Equal(t, realtime.EventNewNotification, emitter.emits[0].event)
	assert.Equal(t, []uint{9}, push.sent)
}

func TestNotifyUserSelfActionIsNoop(t *testing.T) {
	f, repo, _, emitter, _ := newTestFanout()

	f.NotifyUser(7, Input{SenderID: 7, Type: models.NotificationTypeLike})
	f.NotifyUser(0, Input{SenderID: 7, Type: models.NotificationTypeLike})

	assert.Empty(t, repo.created)
	assert.Zero(t, repo.singleCalls)
	assert.Empty(t, emitter.emits)
}

func TestNotifyUserRejectsUnknownType(t *testing.T) {
	f, repo, _, emitter, _ := newTestFanout()

	f.NotifyUser(9, Input{SenderID: 7, Type: "poke"})

	assert.Empty(t, repo.created)
	assert.Empty(t, emitter.emits)
}

func TestNotifyUserEmitsEvenWhenInsertFails(t *testing.T) {
	f, repo, _, emitter, _ := newTestFanout()
	repo.failCreate = true

	f.NotifyUser(9, Input{SenderID: 7, Type: models.NotificationTypeComment})

	assert.Empty(t, repo.created)
	require.Len(t, emitter.emits, 1, "live emit must go out regardless of the durable write")
}

func TestNotifyAllUsersSingleBulkInsert(t *testing.T) {
	f, repo, lister, emitter, push := newTestFanout()
	lister.ids = []uint{1, 2, 7, 3}

	f.NotifyAllUsers(Input{
		SenderID: 7,
		Type:     models.NotificationTypeAnnouncement,
		Title:    "New announcement",
	}, false)

	require.NotNil(t, lister.activeOnly)
	assert.False(t, *lister.activeOnly)

	assert.Equal(t, 1, repo.bulkCalls, "one fan-out, one insert")
	require.Len(t, repo.created, 3)
	for _, n := range repo.created {
		assert.NotEqual(t, uint(7), n.RecipientID, "actor must not notify itself")
		assert.Equal(t, models.NotificationTypeAnnouncement, n.Type)
	}

	require.Len(t, emitter.emits, 3)
	assert.Len(t, push.sent, 3)

	// Every live emit carries the shared projected payload, not a per-row copy.
	for _, e := range emitter.emits {
		payload, ok := e.payload.(models.NotificationPayload)
		require.True(t, ok)
		assert.Equal(t, models.NotificationTypeAnnouncement, payload.Type)
		assert.Equal(t, "New announcement", payload.Title)
		assert.Equal(t, uint(7), payload.SenderID)
	}
}

func TestNotifyAllUsersActiveFilterPassedThrough(t *testing.T) {
	f, _, lister, _, _ := newTestFanout()
	lister.ids = []uint{1, 2}

	f.NotifyAllUsers(Input{SenderID: 7, Type: models.NotificationTypeEventReminder}, true)

	require.NotNil(t, lister.activeOnly)
	assert.True(t, *lister.activeOnly)
}

func TestNotifyAllUsersListerErrorSuppressed(t *testing.T) {
	f, repo, lister, emitter, _ := newTestFanout()
	lister.err = fmt.Errorf("db down")

	f.NotifyAllUsers(Input{SenderID: 7, Type: models.NotificationTypeAnnouncement}, true)

	assert.Empty(t, repo.created)
	assert.Empty(t, emitter.emits)
}

func TestNotifyParticipantsExcludesSender(t *testing.T) {
	f, repo, _, emitter, _ := newTestFanout()

	f.NotifyParticipants([]uint{4, 7, 9}, Input{
		SenderID: 7,
		Type:     models.NotificationTypeMessage,
		Title:    "New message",
	})

	assert.Equal(t, 1, repo.bulkCalls)
	require.Len(t, repo.created, 2)
	assert.Equal(t, uint(4), repo.created[0].RecipientID)
	assert.Equal(t, uint(9), repo.created[1].RecipientID)
	assert.Len(t, emitter.emits, 2)
}

func TestNotifyParticipantsOnlySenderIsNoop(t *testing.T) {
	f, repo, _, emitter, _ := newTestFanout()

	f.NotifyParticipants([]uint{7}, Input{SenderID: 7, Type: models.NotificationTypeMessage})

	assert.Zero(t, repo.bulkCalls)
	assert.Empty(t, emitter.emits)
}

func TestFanoutWithoutPushSender(t *testing.T) {
	repo := &fakeNotificationRepo{}
	emitter := &fakeEmitter{}
	f := NewFanout(repo, &fakeLister{}, emitter, nil)

	f.NotifyUser(9, Input{SenderID: 7, Type: models.NotificationTypeLike})

	require.Len(t, emitter.emits, 1)
}
