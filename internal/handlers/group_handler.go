package handlers

import (
	"context"
	"net/http"

	"github.com/gracepointapp/church-connect/backend/internal/models"
	"github.com/gracepointapp/church-connect/backend/internal/notify"
	"github.com/gracepointapp/church-connect/backend/internal/repositories"
	"github.com/gracepointapp/church-connect/backend/pkg/apperrors"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// GroupHandler handles HTTP requests related to small groups and ministries
type GroupHandler struct {
	groupRepository      repositories.GroupRepository
	membershipRepository repositories.GroupMembershipRepository
	fanout               *notify.Fanout
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupRepo repositories.GroupRepository, membershipRepo repositories.GroupMembershipRepository, fanout *notify.Fanout) *GroupHandler {
	return &GroupHandler{
		groupRepository:      groupRepo,
		membershipRepository: membershipRepo,
		fanout:               fanout,
	}
}

// RegisterGroupRoutes registers group-related routes
func (h *GroupHandler) RegisterGroupRoutes(g *echo.Group) {
	g.POST("/groups", h.CreateGroup)
	g.GET("/groups", h.GetGroups)
	g.GET("/groups/:id", h.GetGroup)
	g.PUT("/groups/:id", h.UpdateGroup)
	g.DELETE("/groups/:id", h.DeleteGroup)
	g.GET("/groups/:id/members", h.GetGroupMembers)
	g.POST("/groups/:id/invites", h.InviteMember)
	g.POST("/groups/:id/requests", h.RequestToJoin)
	g.POST("/groups/:id/members/:user_id/approve", h.ApproveMember)
	g.DELETE("/groups/:id/members", h.LeaveGroup)
}

// CreateGroup creates a group with the caller as its leader and first member
func (h *GroupHandler) CreateGroup(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	group := &models.Group{
		LeaderID:     claims.UserID,
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		IsPrivate:    req.IsPrivate,
		MembersCount: 1,
	}
	if err := h.groupRepository.CreateGroup(c.Request().Context(), group); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	membership := &models.GroupMembership{
		GroupID: group.ID.Hex(),
		UserID:  claims.UserID,
		Status:  models.MembershipMember,
	}
	if err := h.membershipRepository.CreateMembership(membership); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, group)
}

// GetGroups retrieves paginated groups
func (h *GroupHandler) GetGroups(c echo.Context) error {
	page, limit := paginationParams(c, 20)
	skip := int64((page - 1) * limit)

	groups, err := h.groupRepository.GetAllGroups(c.Request().Context(), skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, groups)
}

// GetGroup retrieves a single group
func (h *GroupHandler) GetGroup(c echo.Context) error {
	group, err := h.groupRepository.GetGroupByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Group not found")
	}
	return c.JSON(http.StatusOK, group)
}

// UpdateGroup updates a group (leader or staff role)
func (h *GroupHandler) UpdateGroup(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	groupID := c.Param("id")

	var req models.UpdateGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	group, err := h.groupRepository.GetGroupByID(c.Request().Context(), groupID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Group not found")
	}
	if group.LeaderID != claims.UserID && !models.IsElevatedRole(claims.Role) {
		return echo.NewHTTPError(http.StatusForbidden, "Only the group leader can update the group")
	}

	if req.Name != "" {
		group.Name = req.Name
	}
	if req.Description != "" {
		group.Description = req.Description
	}
	if req.ImageURL != "" {
		group.ImageURL = req.ImageURL
	}

	if err := h.groupRepository.UpdateGroup(c.Request().Context(), groupID, group); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, group)
}

// DeleteGroup deletes a group (leader or staff role)
func (h *GroupHandler) DeleteGroup(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	groupID := c.Param("id")

	group, err := h.groupRepository.GetGroupByID(c.Request().Context(), groupID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Group not found")
	}
	if group.LeaderID != claims.UserID && !models.IsElevatedRole(claims.Role) {
		return echo.NewHTTPError(http.StatusForbidden, "Only the group leader can delete the group")
	}

	if err := h.groupRepository.DeleteGroup(c.Request().Context(), groupID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// GetGroupMembers lists memberships for a group, filterable by status
func (h *GroupHandler) GetGroupMembers(c echo.Context) error {
	groupID := c.Param("id")

	if _, err := h.groupRepository.GetGroupByID(c.Request().Context(), groupID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Group not found")
	}

	memberships, err := h.membershipRepository.GetMembershipsByGroup(groupID, c.QueryParam("status"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, memberships)
}

// InviteMember invites a user into the group and notifies them
func (h *GroupHandler) InviteMember(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	groupID := c.Param("id")

	var req models.InviteMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	group, err := h.groupRepository.GetGroupByID(c.Request().Context(), groupID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Group not found")
	}
	if group.LeaderID != claims.UserID && !models.IsElevatedRole(claims.Role) {
		return echo.NewHTTPError(http.StatusForbidden, "Only the group leader can invite members")
	}

	membership := &models.GroupMembership{
		GroupID: groupID,
		UserID:  req.UserID,
		Status:  models.MembershipInvited,
	}
	if err := h.membershipRepository.CreateMembership(membership); err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}

	h.fanout.NotifyUser(req.UserID, notify.Input{
		SenderID:     claims.UserID,
		Type:         models.NotificationTypeGroupInvite,
		Title:        "Group invitation",
		Message:      "You were invited to join " + group.Name,
		Link:         "/groups/" + groupID,
		RelatedGroup: groupID,
	})

	return c.JSON(http.StatusCreated, membership)
}

// RequestToJoin records a join request and notifies the group leader
func (h *GroupHandler) RequestToJoin(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	groupID := c.Param("id")

	group, err := h.groupRepository.GetGroupByID(c.Request().Context(), groupID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Group not found")
	}

	membership := &models.GroupMembership{
		GroupID: groupID,
		UserID:  claims.UserID,
		Status:  models.MembershipRequested,
	}
	if err := h.membershipRepository.CreateMembership(membership); err != nil {
		return echo.NewHTTPError(apperrors.HTTPStatus(err), err.Error())
	}

	h.fanout.NotifyUser(group.LeaderID, notify.Input{
		SenderID:     claims.UserID,
		Type:         models.NotificationTypeGroupRequest,
		Title:        "Join request",
		Message:      "Someone asked to join " + group.Name,
		Link:         "/groups/" + groupID + "/members",
		RelatedGroup: groupID,
	})

	return c.JSON(http.StatusCreated, membership)
}

// ApproveMember promotes an invited or requested user to full member. The
// invitee accepting their own invite and the leader approving a request both
// land here.
func (h *GroupHandler) ApproveMember(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	groupID := c.Param("id")

	userID, err := parseUintParam(c, "user_id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	group, err := h.groupRepository.GetGroupByID(c.Request().Context(), groupID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Group not found")
	}

	membership, err := h.membershipRepository.GetMembership(groupID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Membership not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if membership.Status == models.MembershipMember {
		return echo.NewHTTPError(http.StatusConflict, "User is already a member")
	}

	// An invite is accepted by its target; a request is approved by the leader.
	switch membership.Status {
	case models.MembershipInvited:
		if claims.UserID != userID {
			return echo.NewHTTPError(http.StatusForbidden, "Only the invited user can accept an invitation")
		}
	case models.MembershipRequested:
		if group.LeaderID != claims.UserID && !models.IsElevatedRole(claims.Role) {
			return echo.NewHTTPError(http.StatusForbidden, "Only the group leader can approve join requests")
		}
	}

	if err := h.membershipRepository.UpdateMembershipStatus(groupID, userID, models.MembershipMember); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	go h.groupRepository.AdjustMembersCount(context.Background(), groupID, 1)

	return c.JSON(http.StatusOK, echo.Map{"group_id": groupID, "user_id": userID, "status": models.MembershipMember})
}

// LeaveGroup removes the caller's membership
func (h *GroupHandler) LeaveGroup(c echo.Context) error {
	claims := getClaimsFromContext(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	groupID := c.Param("id")

	group, err := h.groupRepository.GetGroupByID(c.Request().Context(), groupID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Group not found")
	}
	if group.LeaderID == claims.UserID {
		return echo.NewHTTPError(http.StatusConflict, "The leader cannot leave their own group")
	}

	membership, err := h.membershipRepository.GetMembership(groupID, claims.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Membership not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.membershipRepository.DeleteMembership(groupID, claims.UserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Pending invites and requests never counted toward the member total.
	if membership.Status == models.MembershipMember {
		go h.groupRepository.AdjustMembersCount(context.Background(), groupID, -1)
	}

	return c.NoContent(http.StatusNoContent)
}
