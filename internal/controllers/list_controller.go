package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"listloop-server/internal/logics"
	"listloop-server/internal/middlewares"
	"listloop-server/internal/utils"
	"listloop-server/pkg/errors"
)

// ListController handles HTTP requests for todo lists.
type ListController struct {
	listService *logics.ListService
}

// NewListController returns a new instance of ListController.
func NewListController(listService *logics.ListService) *ListController {
	return &ListController{listService: listService}
}

type createListRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CreateList handles POST /lists
func (lc *ListController) CreateList(c echo.Context) error {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return errors.JSON(c, err)
	}

	var req createListRequest
	if err := c.Bind(&req); err != nil {
		return errors.JSON(c, errors.Invalid("invalid request body"))
	}

	list, err := lc.listService.CreateList(c.Request().Context(), userID, req.Title, req.Description)
	if err != nil {
		return errors.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, list)
}

// GetRecentLists handles GET /lists
func (lc *ListController) GetRecentLists(c echo.Context) error {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return errors.JSON(c, err)
	}

	pagination := utils.ExtractCursorPaginationFromContext(c)
	result, err := lc.listService.GetRecentLists(c.Request().Context(), userID, pagination)
	if err != nil {
		return errors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetList handles GET /lists/:listId
func (lc *ListController) GetList(c echo.Context) error {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return errors.JSON(c, err)
	}

	listID := c.Param("listId")
	if listID == "" {
		return errors.JSON(c, errors.Invalid("list ID is required"))
	}

	list, err := lc.listService.GetList(c.Request().Context(), listID, userID)
	if err != nil {
		return errors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

// DeleteList handles DELETE /lists/:listId
func (lc *ListController) DeleteList(c echo.Context) error {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return errors.JSON(c, err)
	}

	listID := c.Param("listId")
	if listID == "" {
		return errors.JSON(c, errors.Invalid("list ID is required"))
	}

	if err := lc.listService.DeleteList(c.Request().Context(), listID, userID); err != nil {
		return errors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "list deleted"})
}
