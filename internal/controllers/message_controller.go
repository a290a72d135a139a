package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"listloop-server/internal/logics"
	"listloop-server/internal/middlewares"
	"listloop-server/pkg/errors"
)

// MessageController handles HTTP requests for list-scoped direct
// messages.
type MessageController struct {
	messageService *logics.MessageService
}

// NewMessageController returns a new instance of MessageController.
func NewMessageController(messageService *logics.MessageService) *MessageController {
	return &MessageController{messageService: messageService}
}

type sendMessageRequest struct {
	ReceiverID string `json:"receiverId" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

// SendMessage handles POST /lists/:listId/messages
func (mc *MessageController) SendMessage(c echo.Context) error {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return errors.JSON(c, err)
	}

	listID := c.Param("listId")
	if listID == "" {
		return errors.JSON(c, errors.Invalid("list ID is required"))
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return errors.JSON(c, errors.Invalid("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return errors.JSON(c, errors.Invalid(err.Error()))
	}

	message, err := mc.messageService.Send(c.Request().Context(), listID, userID, req.ReceiverID, req.Content)
	if err != nil {
		return errors.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, message)
}

// GetThread handles GET /lists/:listId/messages?with=<userId>
func (mc *MessageController) GetThread(c echo.Context) error {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return errors.JSON(c, err)
	}

	listID := c.Param("listId")
	otherID := c.QueryParam("with")
	if listID == "" || otherID == "" {
		return errors.JSON(c, errors.Invalid("list ID and with parameter are required"))
	}

	messages, err := mc.messageService.Thread(c.Request().Context(), listID, userID, otherID)
	if err != nil {
		return errors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, messages)
}
