package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gracepointapp/church-connect/backend/internal/models"
	"github.com/gracepointapp/church-connect/backend/internal/notify"
	"github.com/gracepointapp/church-connect/backend/internal/realtime"
	"github.com/gracepointapp/church-connect/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	fanout            *notify.Fanout
	gateway           *realtime.Gateway
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, fanout *notify.Fanout, gateway *realtime.Gateway) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		fanout:            fanout,
		gateway:           gateway,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetCommentsForPost)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment creates a comment, notifies the post author and broadcasts
// the new comment to the feed
func (h *CommentHandler) CreateComment(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), req.PostID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	comment := &models.Comment{
		PostID:  req.PostID,
		UserID:  claims.UserID,
		Content: req.Content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	go h.postRepository.IncrementCommentsCount(context.Background(), req.PostID)

	h.fanout.NotifyUser(post.AuthorID, notify.Input{
		SenderID:    claims.UserID,
		Type:        models.NotificationTypeComment,
		Title:       "New comment",
		Message:     truncate(comment.Content, 140),
		Link:        "/posts/" + req.PostID,
		RelatedPost: req.PostID,
	})
	h.gateway.Broadcast(realtime.EventNewComment, comment)

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsForPost retrieves paginated comments for a post
func (h *CommentHandler) GetCommentsForPost(c echo.Context) error {
	postID := c.Param("post_id")

	page, limit := paginationParams(c, 20)
	comments, total, err := h.commentRepository.GetCommentsByPostID(postID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"comments": comments, "total": total})
}

// UpdateComment updates a comment owned by the caller
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if comment.UserID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only edit your own comments")
	}

	comment.Content = req.Content
	if err := h.commentRepository.UpdateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, comment)
}

// DeleteComment deletes a comment (owner or staff role) and broadcasts the removal
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if comment.UserID != claims.UserID && !models.IsElevatedRole(claims.Role) {
		return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own comments")
	}

	if err := h.commentRepository.DeleteComment(uint(commentID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	go h.postRepository.DecrementCommentsCount(context.Background(), comment.PostID)

	h.gateway.Broadcast(realtime.EventCommentDeleted, echo.Map{"comment_id": commentID, "post_id": comment.PostID})

	return c.NoContent(http.StatusNoContent)
}
