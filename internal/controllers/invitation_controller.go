package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"listloop-server/internal/logics"
	"listloop-server/internal/middlewares"
	"listloop-server/pkg/errors"
)

// InvitationController handles HTTP requests for collaborator
// invitations.
type InvitationController struct {
	invitationService *logics.InvitationService
}

// NewInvitationController returns a new instance of InvitationController.
func NewInvitationController(invitationService *logics.InvitationService) *InvitationController {
	return &InvitationController{invitationService: invitationService}
}

type inviteRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// Invite handles POST /lists/:listId/invite
func (ic *InvitationController) Invite(c echo.Context) error {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return errors.JSON(c, err)
	}

	listID := c.Param("listId")
	if listID == "" {
		return errors.JSON(c, errors.Invalid("list ID is required"))
	}

	var req inviteRequest
	if err := c.Bind(&req); err != nil {
		return errors.JSON(c, errors.Invalid("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return errors.JSON(c, errors.Invalid(err.Error()))
	}

	invitation, err := ic.invitationService.Invite(c.Request().Context(), listID, userID, req.UserID)
	if err != nil {
		return errors.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, invitation)
}

// GetCollaborators handles GET /lists/:listId/collaborators
func (ic *InvitationController) GetCollaborators(c echo.Context) error {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return errors.JSON(c, err)
	}

	listID := c.Param("listId")
	if listID == "" {
		return errors.JSON(c, errors.Invalid("list ID is required"))
	}

	collaborators, err := ic.invitationService.GetCollaborators(c.Request().Context(), listID, userID)
	if err != nil {
		return errors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, collaborators)
}

// GetInvitations handles GET /invitations
func (ic *InvitationController) GetInvitations(c echo.Context) error {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return errors.JSON(c, err)
	}

	invitations, err := ic.invitationService.GetInvitations(c.Request().Context(), userID)
	if err != nil {
		return errors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, invitations)
}

// CountInvitations handles GET /invitations/count
func (ic *InvitationController) CountInvitations(c echo.Context) error {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return errors.JSON(c, err)
	}

	count, err := ic.invitationService.CountInvitations(c.Request().Context(), userID)
	if err != nil {
		return errors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": count})
}

// Accept handles POST /invitations/:invitationId/accept
func (ic *InvitationController) Accept(c echo.Context) error {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return errors.JSON(c, err)
	}

	invitationID := c.Param("invitationId")
	if invitationID == "" {
		return errors.JSON(c, errors.Invalid("invitation ID is required"))
	}

	invitation, err := ic.invitationService.Accept(c.Request().Context(), invitationID, userID)
	if err != nil {
		return errors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, invitation)
}

// Decline handles POST /invitations/:invitationId/decline
func (ic *InvitationController) Decline(c echo.Context) error {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return errors.JSON(c, err)
	}

	invitationID := c.Param("invitationId")
	if invitationID == "" {
		return errors.JSON(c, errors.Invalid("invitation ID is required"))
	}

	if err := ic.invitationService.Decline(c.Request().Context(), invitationID, userID); err != nil {
		return errors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "invitation declined"})
}
