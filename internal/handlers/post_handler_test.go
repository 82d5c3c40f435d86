package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gracepointapp/church-connect/backend/internal/models"
	"github.com/gracepointapp/church-connect/backend/internal/notify"
	"github.com/gracepointapp/church-connect/backend/internal/realtime"
	"github.com/gracepointapp/church-connect/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubPostRepo struct {
	created []*models.Post
}

func (s *stubPostRepo) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	s.created = append(s.created, post)
	return nil
}

func (s *stubPostRepo) GetPostByID(context.Context, string) (*models.Post, error) { return nil, nil }
func (s *stubPostRepo) GetPostsByAuthorID(context.Context, uint, int64, int64) ([]models.Post, error) {
	return nil, nil
}
func (s *stubPostRepo) GetAllPosts(context.Context, int64, int64) ([]models.Post, error) {
	return nil, nil
}
func (s *stubPostRepo) CountPosts(context.Context) (int64, error)              { return 0, nil }
func (s *stubPostRepo) UpdatePost(context.Context, string, *models.Post) error { return nil }
func (s *stubPostRepo) DeletePost(context.Context, string) error               { return nil }
func (s *stubPostRepo) IncrementLikesCount(context.Context, string) error      { return nil }
func (s *stubPostRepo) DecrementLikesCount(context.Context, string) error      { return nil }
func (s *stubPostRepo) IncrementCommentsCount(context.Context, string) error   { return nil }
func (s *stubPostRepo) DecrementCommentsCount(context.Context, string) error   { return nil }

type stubNotificationRepo struct {
	created   []models.Notification
	bulkCalls int
}

func (s *stubNotificationRepo) CreateNotification(n *models.Notification) error {
	s.created = append(s.created, *n)
	return nil
}

func (s *stubNotificationRepo) CreateNotifications(ns []models.Notification) error {
	s.bulkCalls++
	s.created = append(s.created, ns...)
	return nil
}

func (s *stubNotificationRepo) GetByRecipientID(uint, int, int) ([]models.Notification, int64, error) {
	return nil, 0, nil
}
func (s *stubNotificationRepo) GetUnreadCount(uint) (int64, error)  { return 0, nil }
func (s *stubNotificationRepo) MarkAsRead(uint, uint) error         { return nil }
func (s *stubNotificationRepo) MarkAllAsRead(uint) error            { return nil }
func (s *stubNotificationRepo) DeleteNotification(uint, uint) error { return nil }

type stubRecipientLister struct {
	ids        []uint
	activeOnly *bool
}

func (s *stubRecipientLister) GetAllUserIDs(excludeID uint, activeOnly bool) ([]uint, error) {
	s.activeOnly = &activeOnly
	out := make([]uint, 0, len(s.ids))
	for _, id := range s.ids {
		if id != excludeID {
			out = append(out, id)
		}
	}
	return out, nil
}

type stubEmitter struct {
	emits      int
	broadcasts int
}

func (s *stubEmitter) EmitToUser(uint, string, interface{}) { s.emits++ }
func (s *stubEmitter) Broadcast(string, interface{})        { s.broadcasts++ }

// newHandlerContext builds an Echo context carrying a JSON body and the
// caller's JWT claims, the way the auth middleware would leave them.
func newHandlerContext(method, target, body string, claims *models.JwtCustomClaims) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validators.NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", claims)
	return c, rec
}

func TestCreatePostByMemberNotifiesNobody(t *testing.T) {
	posts := &stubPostRepo{}
	notifs := &stubNotificationRepo{}
	lister := &stubRecipientLister{ids: []uint{1, 2, 3}}
	fanout := notify.NewFanout(notifs, lister, &stubEmitter{}, nil)
	h := NewPostHandler(posts, fanout, realtime.NewGateway())

	c, rec := newHandlerContext(http.MethodPost, "/api/v1/posts", `{"content":"see you sunday"}`,
		&models.JwtCustomClaims{UserID: 7, Role: models.RoleMember})

	require.NoError(t, h.CreatePost(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, posts.created, 1)

	assert.Zero(t, notifs.bulkCalls, "a member post must not fan out an announcement")
	assert.Empty(t, notifs.created)
	assert.Nil(t, lister.activeOnly, "the recipient set must not even be computed")
}

func TestCreatePostByStaffFansOutAnnouncement(t *testing.T) {
	posts := &stubPostRepo{}
	notifs := &stubNotificationRepo{}
	lister := &stubRecipientLister{ids: []uint{1, 2, 3}}
	fanout := notify.NewFanout(notifs, lister, &stubEmitter{}, nil)
	h := NewPostHandler(posts, fanout, realtime.NewGateway())

	c, rec := newHandlerContext(http.MethodPost, "/api/v1/posts", `{"content":"service moved to 10am"}`,
		&models.JwtCustomClaims{UserID: 7, Role: models.RoleStaff})

	require.NoError(t, h.CreatePost(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, 1, notifs.bulkCalls)
	require.NotNil(t, lister.activeOnly)
	assert.False(t, *lister.activeOnly, "announcements reach deactivated accounts too")

	require.Len(t, notifs.created, 3)
	for _, n := range notifs.created {
		assert.Equal(t, models.NotificationTypeAnnouncement, n.Type)
		assert.Equal(t, uint(7), n.SenderID)
	}
}
