package handlers

import (
	"context"
	"net/http"

	"github.com/gracepointapp/church-connect/backend/internal/models"
	"github.com/gracepointapp/church-connect/backend/internal/notify"
	"github.com/gracepointapp/church-connect/backend/internal/repositories"
	"github.com/gracepointapp/church-connect/backend/pkg/apperrors"
	"github.com/labstack/echo/v4"
)

// PrayerHandler handles HTTP requests related to prayer requests
type PrayerHandler struct {
	prayerRepository   repositories.PrayerRepository
	responseRepository repositories.PrayerResponseRepository
	fanout             *notify.Fanout
}

// NewPrayerHandler creates a new PrayerHandler
func NewPrayerHandler(prayerRepo repositories.PrayerRepository, responseRepo repositories.PrayerResponseRepository, fanout *notify.Fanout) *PrayerHandler {
	return &PrayerHandler{
		prayerRepository:   prayerRepo,
		responseRepository: responseRepo,
		fanout:             fanout,
	}
}

// RegisterPrayerRoutes registers prayer-related routes
func (h *PrayerHandler) RegisterPrayerRoutes(g *echo.Group) {
	g.POST("/prayers", h.CreatePrayer)
	g.GET("/prayers", h.GetPrayers)
	g.GET("/prayers/:id", h.GetPrayer)
	g.PUT("/prayers/:id", h.UpdatePrayer)
	g.DELETE("/prayers/:id", h.DeletePrayer)
	g.POST("/prayers/:id/responses", h.Pray)
	g.DELETE("/prayers/:id/responses", h.RemovePrayerResponse)
}

// CreatePrayer creates a prayer request
func (h *PrayerHandler) CreatePrayer(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePrayerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	prayer := &models.Prayer{
		AuthorID:    claims.UserID,
		Title:       req.Title,
		Content:     req.Content,
		IsAnonymous: req.IsAnonymous,
	}
	if err := h.prayerRepository.CreatePrayer(c.Request().Context(), prayer); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, prayer)
}

// GetPrayers retrieves paginated prayer requests
func (h *PrayerHandler) GetPrayers(c echo.Context) error {
	page, limit := paginationParams(c, 20)
	skip := int64((page - 1) * limit)

	prayers, err := h.prayerRepository.GetAllPrayers(c.Request().Context(), skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, prayers)
}

// GetPrayer retrieves a single prayer request
func (h *PrayerHandler) GetPrayer(c echo.Context) error {
	prayer, err := h.prayerRepository.GetPrayerByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Prayer not found")
	}
	return c.JSON(http.StatusOK, prayer)
}

// UpdatePrayer updates a prayer request owned by the caller
func (h *PrayerHandler) UpdatePrayer(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	prayerID := c.Param("id")

	var req models.UpdatePrayerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	prayer, err := h.prayerRepository.GetPrayerByID(c.Request().Context(), prayerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Prayer not found")
	}
	if prayer.AuthorID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only edit your own prayer requests")
	}

	if req.Title != "" {
		prayer.Title = req.Title
	}
	if req.Content != "" {
		prayer.Content = req.Content
	}
	if req.IsAnswered != nil {
		prayer.IsAnswered = *req.IsAnswered
	}

	if err := h.prayerRepository.UpdatePrayer(c.Request().Context(), prayerID, prayer); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, prayer)
}

// DeletePrayer deletes a prayer request (owner or staff role)
func (h *PrayerHandler) DeletePrayer(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	prayerID := c.Param("id")

	prayer, err := h.prayerRepository.GetPrayerByID(c.Request().Context(), prayerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Prayer not found")
	}
	if prayer.AuthorID != claims.UserID && !models.IsElevatedRole(claims.Role) {
		return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own prayer requests")
	}

	if err := h.prayerRepository.DeletePrayer(c.Request().Context(), prayerID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// Pray records that the caller prayed for a request and notifies the author.
// Praying for your own request notifies nobody.
func (h *PrayerHandler) Pray(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	prayerID := c.Param("id")

	prayer, err := h.prayerRepository.GetPrayerByID(c.Request().Context(), prayerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Prayer not found")
	}

	hasResponded, err := h.responseRepository.HasUserResponded(prayerID, claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if hasResponded {
		return echo.NewHTTPError(http.StatusConflict, "Already prayed for this request")
	}

	response := &models.PrayerResponse{PrayerID: prayerID, UserID: claims.UserID}
	if err := h.responseRepository.CreateResponse(response); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	go h.prayerRepository.AdjustResponsesCount(context.Background(), prayerID, 1)

	h.fanout.NotifyUser(prayer.AuthorID, notify.Input{
		SenderID:      claims.UserID,
		Type:          models.NotificationTypePrayerResponse,
		Title:         "Someone prayed for you",
		Message:       "Your request \"" + truncate(prayer.Title, 60) + "\" received a prayer",
		Link:          "/prayers/" + prayerID,
		RelatedPrayer: prayerID,
	})

	return c.JSON(http.StatusCreated, response)
}

// RemovePrayerResponse removes the caller's response. No notification.
func (h *PrayerHandler) RemovePrayerResponse(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	prayerID := c.Param("id")

	if err := h.responseRepository.DeleteResponse(prayerID, claims.UserID); err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}

	go h.prayerRepository.AdjustResponsesCount(context.Background(), prayerID, -1)

	return c.NoContent(http.StatusNoContent)
}
