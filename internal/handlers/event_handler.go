package handlers

import (
	"context"
	"net/http"

	"github.com/gracepointapp/church-connect/backend/internal/models"
	"github.com/gracepointapp/church-connect/backend/internal/notify"
	"github.com/gracepointapp/church-connect/backend/internal/realtime"
	"github.com/gracepointapp/church-connect/backend/internal/repositories"
	"github.com/gracepointapp/church-connect/backend/pkg/apperrors"
	"github.com/labstack/echo/v4"
)

// EventHandler handles HTTP requests related to church events
type EventHandler struct {
	eventRepository repositories.EventRepository
	rsvpRepository  repositories.EventRSVPRepository
	userRepository  repositories.UserRepository
	fanout          *notify.Fanout
	gateway         *realtime.Gateway
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventRepo repositories.EventRepository, rsvpRepo repositories.EventRSVPRepository, userRepo repositories.UserRepository, fanout *notify.Fanout, gateway *realtime.Gateway) *EventHandler {
	return &EventHandler{
		eventRepository: eventRepo,
		rsvpRepository:  rsvpRepo,
		userRepository:  userRepo,
		fanout:          fanout,
		gateway:         gateway,
	}
}

// RegisterEventRoutes registers event-related routes. Mutations require a
// staff role, wired up by the router.
func (h *EventHandler) RegisterEventRoutes(g *echo.Group, staff *echo.Group) {
	g.GET("/events", h.GetUpcomingEvents)
	g.GET("/events/:id", h.GetEvent)
	g.POST("/events/:id/rsvp", h.RSVP)
	g.DELETE("/events/:id/rsvp", h.CancelRSVP)

	staff.POST("/events", h.CreateEvent)
	staff.PUT("/events/:id", h.UpdateEvent)
	staff.DELETE("/events/:id", h.DeleteEvent)
	staff.POST("/events/:id/remind", h.SendReminders)
}

// CreateEvent creates an event and fans out an invite to every other user
func (h *EventHandler) CreateEvent(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event := &models.Event{
		CreatorID:   claims.UserID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		ImageURL:    req.ImageURL,
	}
	if err := h.eventRepository.CreateEvent(c.Request().Context(), event); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// New-event invites go to all users, deactivated ones included.
	h.fanout.NotifyAllUsers(notify.Input{
		SenderID:     claims.UserID,
		Type:         models.NotificationTypeEventInvite,
		Title:        "New event: " + event.Title,
		Message:      truncate(event.Description, 140),
		Link:         "/events/" + event.ID.Hex(),
		RelatedEvent: event.ID.Hex(),
	}, false)

	return c.JSON(http.StatusCreated, event)
}

// GetUpcomingEvents retrieves upcoming events
func (h *EventHandler) GetUpcomingEvents(c echo.Context) error {
	page, limit := paginationParams(c, 20)
	skip := int64((page - 1) * limit)

	events, err := h.eventRepository.GetUpcomingEvents(c.Request().Context(), skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, events)
}

// GetEvent retrieves a single event
func (h *EventHandler) GetEvent(c echo.Context) error {
	event, err := h.eventRepository.GetEventByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Event not found")
	}
	return c.JSON(http.StatusOK, event)
}

// UpdateEvent updates an event
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	eventID := c.Param("id")

	var req models.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.eventRepository.GetEventByID(c.Request().Context(), eventID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Event not found")
	}

	if req.Title != "" {
		event.Title = req.Title
	}
	if req.Description != "" {
		event.Description = req.Description
	}
	if req.Location != "" {
		event.Location = req.Location
	}
	if !req.StartsAt.IsZero() {
		event.StartsAt = req.StartsAt
	}
	if !req.EndsAt.IsZero() {
		event.EndsAt = req.EndsAt
	}
	if req.ImageURL != "" {
		event.ImageURL = req.ImageURL
	}

	if err := h.eventRepository.UpdateEvent(c.Request().Context(), eventID, event); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, event)
}

// DeleteEvent deletes an event and broadcasts the removal
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	eventID := c.Param("id")

	if err := h.eventRepository.DeleteEvent(c.Request().Context(), eventID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Event not found")
	}

	h.gateway.Broadcast(realtime.EventEventDeleted, echo.Map{"event_id": eventID})

	return c.NoContent(http.StatusNoContent)
}

// RSVP records that the caller plans to attend
func (h *EventHandler) RSVP(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	eventID := c.Param("id")

	if _, err := h.eventRepository.GetEventByID(c.Request().Context(), eventID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Event not found")
	}

	hasRSVPed, err := h.rsvpRepository.HasUserRSVPed(eventID, claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if hasRSVPed {
		return echo.NewHTTPError(http.StatusConflict, "Already RSVPed to this event")
	}

	rsvp := &models.EventRSVP{EventID: eventID, UserID: claims.UserID}
	if err := h.rsvpRepository.CreateRSVP(rsvp); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	go h.eventRepository.AdjustRSVPCount(context.Background(), eventID, 1)

	return c.JSON(http.StatusCreated, rsvp)
}

// CancelRSVP removes the caller's RSVP
func (h *EventHandler) CancelRSVP(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	eventID := c.Param("id")

	if err := h.rsvpRepository.DeleteRSVP(eventID, claims.UserID); err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}

	go h.eventRepository.AdjustRSVPCount(context.Background(), eventID, -1)

	return c.NoContent(http.StatusNoContent)
}

// SendReminders fans out an event reminder to everyone who RSVPed. Unlike
// invites, reminders filter on participation, not the whole membership.
func (h *EventHandler) SendReminders(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	eventID := c.Param("id")

	event, err := h.eventRepository.GetEventByID(c.Request().Context(), eventID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Event not found")
	}

	rsvpIDs, err := h.rsvpRepository.GetRSVPUserIDs(eventID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Deactivated accounts keep their RSVP rows but get no reminder.
	recipientIDs, err := h.userRepository.FilterActiveUserIDs(rsvpIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.fanout.NotifyParticipants(recipientIDs, notify.Input{
		SenderID:     claims.UserID,
		Type:         models.NotificationTypeEventReminder,
		Title:        "Reminder: " + event.Title,
		Message:      "Starts " + event.StartsAt.Format("Mon Jan 2 at 3:04 PM"),
		Link:         "/events/" + eventID,
		RelatedEvent: eventID,
	})

	return c.JSON(http.StatusOK, echo.Map{"reminded": len(recipientIDs)})
}
