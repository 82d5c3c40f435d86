package handlers

import (
	"net/http"

	"github.com/gracepointapp/church-connect/backend/internal/models"
	"github.com/gracepointapp/church-connect/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the community feed: posts enriched with the caller's
// like status
type FeedHandler struct {
	postRepository repositories.PostRepository
	likeRepository repositories.LikeRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository, likeRepo repositories.LikeRepository) *FeedHandler {
	return &FeedHandler{postRepository: postRepo, likeRepository: likeRepo}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// feedItem is a post plus the caller's like state
type feedItem struct {
	models.Post
	HasLiked bool `json:"has_liked"`
}

// GetFeed retrieves the paginated feed with per-post like status for the caller
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, limit := paginationParams(c, 10)
	skip := int64((page - 1) * limit)

	posts, err := h.postRepository.GetAllPosts(c.Request().Context(), skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	total, err := h.postRepository.CountPosts(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	postIDs := make([]string, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID.Hex()
	}
	liked, err := h.likeRepository.GetLikedPostIDs(currentUserID, postIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	items := make([]feedItem, len(posts))
	for i, p := range posts {
		items[i] = feedItem{Post: p, HasLiked: liked[p.ID.Hex()]}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"posts": items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}
