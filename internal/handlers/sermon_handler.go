package handlers

import (
	"net/http"

	"github.com/gracepointapp/church-connect/backend/internal/models"
	"github.com/gracepointapp/church-connect/backend/internal/realtime"
	"github.com/gracepointapp/church-connect/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// SermonHandler handles HTTP requests related to the sermon archive
type SermonHandler struct {
	sermonRepository repositories.SermonRepository
	gateway          *realtime.Gateway
}

// NewSermonHandler creates a new SermonHandler
func NewSermonHandler(sermonRepo repositories.SermonRepository, gateway *realtime.Gateway) *SermonHandler {
	return &SermonHandler{sermonRepository: sermonRepo, gateway: gateway}
}

// RegisterSermonRoutes registers sermon-related routes. Mutations require a
// staff role, wired up by the router.
func (h *SermonHandler) RegisterSermonRoutes(g *echo.Group, staff *echo.Group) {
	g.GET("/sermons", h.GetSermons)
	g.GET("/sermons/:id", h.GetSermon)

	staff.POST("/sermons", h.CreateSermon)
	staff.PUT("/sermons/:id", h.UpdateSermon)
	staff.DELETE("/sermons/:id", h.DeleteSermon)
}

// CreateSermon adds a sermon to the archive
func (h *SermonHandler) CreateSermon(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateSermonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sermon := &models.Sermon{
		UploaderID:  claims.UserID,
		Title:       req.Title,
		Speaker:     req.Speaker,
		Description: req.Description,
		Scripture:   req.Scripture,
		VideoURL:    req.VideoURL,
		AudioURL:    req.AudioURL,
		PreachedAt:  req.PreachedAt,
	}
	if err := h.sermonRepository.CreateSermon(c.Request().Context(), sermon); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, sermon)
}

// GetSermons retrieves paginated sermons, most recently preached first
func (h *SermonHandler) GetSermons(c echo.Context) error {
	page, limit := paginationParams(c, 20)
	skip := int64((page - 1) * limit)

	sermons, err := h.sermonRepository.GetAllSermons(c.Request().Context(), skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sermons)
}

// GetSermon retrieves a single sermon
func (h *SermonHandler) GetSermon(c echo.Context) error {
	sermon, err := h.sermonRepository.GetSermonByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Sermon not found")
	}
	return c.JSON(http.StatusOK, sermon)
}

// UpdateSermon updates a sermon
func (h *SermonHandler) UpdateSermon(c echo.Context) error {
	sermonID := c.Param("id")

	var req models.UpdateSermonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sermon, err := h.sermonRepository.GetSermonByID(c.Request().Context(), sermonID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Sermon not found")
	}

	if req.Title != "" {
		sermon.Title = req.Title
	}
	if req.Speaker != "" {
		sermon.Speaker = req.Speaker
	}
	if req.Description != "" {
		sermon.Description = req.Description
	}
	if req.Scripture != "" {
		sermon.Scripture = req.Scripture
	}
	if req.VideoURL != "" {
		sermon.VideoURL = req.VideoURL
	}
	if req.AudioURL != "" {
		sermon.AudioURL = req.AudioURL
	}

	if err := h.sermonRepository.UpdateSermon(c.Request().Context(), sermonID, sermon); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sermon)
}

// DeleteSermon removes a sermon and broadcasts the removal
func (h *SermonHandler) DeleteSermon(c echo.Context) error {
	sermonID := c.Param("id")

	if err := h.sermonRepository.DeleteSermon(c.Request().Context(), sermonID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Sermon not found")
	}

	h.gateway.Broadcast(realtime.EventSermonDeleted, echo.Map{"sermon_id": sermonID})

	return c.NoContent(http.StatusNoContent)
}
