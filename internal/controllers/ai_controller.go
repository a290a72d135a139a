package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"listloop-server/internal/logics"
	"listloop-server/internal/middlewares"
	"listloop-server/pkg/errors"
)

// AIController handles HTTP requests for AI list generation and
// natural-language commands.
type AIController struct {
	plannerService *logics.PlannerService
}

// NewAIController returns a new instance of AIController.
func NewAIController(plannerService *logics.PlannerService) *AIController {
	return &AIController{plannerService: plannerService}
}

type generateRequest struct {
	Description string `json:"description" validate:"required"`
}

// GenerateList handles POST /ai/generate
func (ac *AIController) GenerateList(c echo.Context) error {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return errors.JSON(c, err)
	}

	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return errors.JSON(c, errors.Invalid("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return errors.JSON(c, errors.Invalid(err.Error()))
	}

	list, err := ac.plannerService.GenerateList(c.Request().Context(), userID, req.Description)
	if err != nil {
		return errors.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, list)
}

type commandRequest struct {
	ListID string `json:"listId" validate:"required"`
	Prompt string `json:"prompt" validate:"required"`
}

// ExecuteCommand handles POST /ai/command
func (ac *AIController) ExecuteCommand(c echo.Context) error {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return errors.JSON(c, err)
	}

	var req commandRequest
	if err := c.Bind(&req); err != nil {
		return errors.JSON(c, errors.Invalid("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return errors.JSON(c, errors.Invalid(err.Error()))
	}

	socketID := middlewares.GetSocketIDFromRequest(c)
	result, err := ac.plannerService.ExecuteCommand(c.Request().Context(),
		req.ListID, userID, socketID, req.Prompt)
	if err != nil {
		return errors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
