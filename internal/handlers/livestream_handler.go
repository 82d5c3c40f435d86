package handlers

import (
	"net/http"

	"github.com/gracepointapp/church-connect/backend/internal/models"
	"github.com/gracepointapp/church-connect/backend/internal/realtime"
	"github.com/gracepointapp/church-connect/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LiveStreamHandler handles HTTP requests related to live service broadcasts
type LiveStreamHandler struct {
	streamRepository repositories.LiveStreamRepository
	gateway          *realtime.Gateway
}

// NewLiveStreamHandler creates a new LiveStreamHandler
func NewLiveStreamHandler(streamRepo repositories.LiveStreamRepository, gateway *realtime.Gateway) *LiveStreamHandler {
	return &LiveStreamHandler{streamRepository: streamRepo, gateway: gateway}
}

// RegisterLiveStreamRoutes registers live stream routes. Starting and ending
// a broadcast requires a staff role, wired up by the router.
func (h *LiveStreamHandler) RegisterLiveStreamRoutes(g *echo.Group, staff *echo.Group) {
	g.GET("/streams/live", h.GetLiveStreams)
	g.GET("/streams", h.GetRecentStreams)
	g.GET("/streams/:id", h.GetStream)
	g.POST("/streams/:id/viewers", h.JoinStream)
	g.DELETE("/streams/:id/viewers", h.LeaveStream)

	staff.POST("/streams", h.StartStream)
	staff.PUT("/streams/:id/end", h.EndStream)
}

// StartStream begins a broadcast and announces it to everyone connected
func (h *LiveStreamHandler) StartStream(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.StartLiveStreamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	stream := &models.LiveStream{
		HostID:    claims.UserID,
		Title:     req.Title,
		StreamURL: req.StreamURL,
	}
	if err := h.streamRepository.CreateStream(c.Request().Context(), stream); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.gateway.Broadcast(realtime.EventStreamStarted, stream)

	return c.JSON(http.StatusCreated, stream)
}

// EndStream marks a broadcast finished and announces it
func (h *LiveStreamHandler) EndStream(c echo.Context) error {
	streamID := c.Param("id")

	if err := h.streamRepository.EndStream(c.Request().Context(), streamID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Stream not found")
	}

	h.gateway.Broadcast(realtime.EventStreamEnded, echo.Map{"stream_id": streamID})

	return c.NoContent(http.StatusNoContent)
}

// GetLiveStreams lists broadcasts currently live
func (h *LiveStreamHandler) GetLiveStreams(c echo.Context) error {
	streams, err := h.streamRepository.GetLiveStreams(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, streams)
}

// GetRecentStreams lists past broadcasts, newest first
func (h *LiveStreamHandler) GetRecentStreams(c echo.Context) error {
	page, limit := paginationParams(c, 20)
	skip := int64((page - 1) * limit)

	streams, err := h.streamRepository.GetRecentStreams(c.Request().Context(), skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, streams)
}

// GetStream retrieves a single broadcast
func (h *LiveStreamHandler) GetStream(c echo.Context) error {
	stream, err := h.streamRepository.GetStreamByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Stream not found")
	}
	return c.JSON(http.StatusOK, stream)
}

// JoinStream bumps the viewer counter
func (h *LiveStreamHandler) JoinStream(c echo.Context) error {
	streamID := c.Param("id")

	stream, err := h.streamRepository.GetStreamByID(c.Request().Context(), streamID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Stream not found")
	}
	if !stream.IsLive {
		return echo.NewHTTPError(http.StatusConflict, "Stream is not live")
	}

	if err := h.streamRepository.AdjustViewerCount(c.Request().Context(), streamID, 1); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// LeaveStream drops the viewer counter
func (h *LiveStreamHandler) LeaveStream(c echo.Context) error {
	streamID := c.Param("id")

	if err := h.streamRepository.AdjustViewerCount(c.Request().Context(), streamID, -1); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
