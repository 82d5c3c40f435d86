package notify

import (
	"log"

	"github.com/gracepointapp/church-connect/backend/internal/models"
	"github.com/gracepointapp/church-connect/backend/internal/realtime"
	"github.com/gracepointapp/church-connect/backend/internal/repositories"
)

// Emitter is the slice of the gateway the fan-out needs. Live pushes are
// best-effort and fire-and-forget.
type Emitter interface {
	EmitToUser(userID uint, event string, payload interface{})
	Broadcast(event string, payload interface{})
}

// RecipientLister supplies the "all other users" recipient set for rule (b).
type RecipientLister interface {
	GetAllUserIDs(excludeID uint, activeOnly bool) ([]uint, error)
}

// Input carries the template fields shared by every notification a single
// trigger produces.
type Input struct {
	SenderID      uint
	Type          string
	Title         string
	Message       string
	Link          string
	RelatedPost   string
	RelatedEvent  string
	RelatedGroup  string
	RelatedPrayer string
}

func (in Input) record(recipientID uint) models.Notification {
	return models.Notification{
		RecipientID:   recipientID,
		SenderID:      in.SenderID,
		Type:          in.Type,
		Title:         in.Title,
		Message:       in.Message,
		Link:          in.Link,
		RelatedPost:   in.RelatedPost,
		RelatedEvent:  in.RelatedEvent,
		RelatedGroup:  in.RelatedGroup,
		RelatedPrayer: in.RelatedPrayer,
	}
}

// Fanout computes recipient sets, persists one Notification row per recipient
// and pushes a live event to each. It never fails the triggering request:
// every error is routed through swallow. The live emit is issued regardless of
// the durable write's outcome.
type Fanout struct {
	notifications repositories.NotificationRepository
	users         RecipientLister
	emitter       Emitter
	push          PushSender // optional second channel; nil disables push
}

// NewFanout creates a Fanout. push may be nil.
func NewFanout(notifications repositories.NotificationRepository, users RecipientLister, emitter Emitter, push PushSender) *Fanout {
	return &Fanout{
		notifications: notifications,
		users:         users,
		emitter:       emitter,
		push:          push,
	}
}

// NotifyUser is recipient rule (a): a single explicit recipient. A
// self-triggered action never notifies the actor; exactly 0 or 1 rows are
// written.
func (f *Fanout) NotifyUser(recipientID uint, in Input) {
	if recipientID == 0 || recipientID == in.SenderID {
		return
	}
	if !models.ValidNotificationType(in.Type) {
		f.swallow("create", errUnknownType(in.Type))
		return
	}

	record := in.record(recipientID)
	f.swallow("create", f.notifications.CreateNotification(&record))
	f.deliver(recipientID, record.Payload())
}

// NotifyAllUsers is recipient rule (b): every user except the actor, in one
// bulk insert. activeOnly is a per-call-site policy; some triggers notify
// deactivated users too.
func (f *Fanout) NotifyAllUsers(in Input, activeOnly bool) {
	if !models.ValidNotificationType(in.Type) {
		f.swallow("create", errUnknownType(in.Type))
		return
	}

	recipientIDs, err := f.users.GetAllUserIDs(in.SenderID, activeOnly)
	if err != nil {
		f.swallow("recipient lookup", err)
		return
	}
	f.fanOut(recipientIDs, in)
}

// NotifyParticipants is recipient rule (c): the given participants except the
// actor, in one bulk insert.
func (f *Fanout) NotifyParticipants(participantIDs []uint, in Input) {
	if !models.ValidNotificationType(in.Type) {
		f.swallow("create", errUnknownType(in.Type))
		return
	}

	recipientIDs := make([]uint, 0, len(participantIDs))
	for _, id := range participantIDs {
		if id != in.SenderID {
			recipientIDs = append(recipientIDs, id)
		}
	}
	f.fanOut(recipientIDs, in)
}

func (f *Fanout) fanOut(recipientIDs []uint, in Input) {
	if len(recipientIDs) == 0 {
		return
	}

	records := make([]models.Notification, len(recipientIDs))
	for i, id := range recipientIDs {
		records[i] = in.record(id)
	}
	f.swallow("bulk create", f.notifications.CreateNotifications(records))

	template := in.record(0)
	payload := template.Payload()
	for _, id := range recipientIDs {
		f.deliver(id, payload)
	}
}

func (f *Fanout) deliver(recipientID uint, payload models.NotificationPayload) {
	f.emitter.EmitToUser(recipientID, realtime.EventNewNotification, payload)
	if f.push != nil {
		f.push.Send(recipientID, payload)
	}
}

// swallow is the single suppression point for fan-out failures: the
// triggering write already succeeded, so nothing downstream may fail the
// request. Errors are logged and dropped.
func (f *Fanout) swallow(op string, err error) {
	if err != nil {
		log.Printf("notify: %s failed (suppressed): %v", op, err)
	}
}

type errUnknownType string

func (e errUnknownType) Error() string {
	return "unknown notification type " + string(e)
}
