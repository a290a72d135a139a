package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"listloop-server/internal/logics"
	"listloop-server/internal/middlewares"
	"listloop-server/internal/models"
	"listloop-server/pkg/errors"
)

// ItemController handles HTTP requests for tasks and subtasks.
type ItemController struct {
	itemService *logics.ItemService
}

// NewItemController returns a new instance of ItemController.
func NewItemController(itemService *logics.ItemService) *ItemController {
	return &ItemController{itemService: itemService}
}

// AppendItem handles POST /lists/:listId/append
func (ic *ItemController) AppendItem(c echo.Context) error {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return errors.JSON(c, err)
	}

	listID := c.Param("listId")
	if listID == "" {
		return errors.JSON(c, errors.Invalid("list ID is required"))
	}

	var req logics.AppendInput
	if err := c.Bind(&req); err != nil {
		return errors.JSON(c, errors.Invalid("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return errors.JSON(c, errors.Invalid(err.Error()))
	}

	socketID := middlewares.GetSocketIDFromRequest(c)
	created, err := ic.itemService.Append(c.Request().Context(), listID, userID, socketID, req)
	if err != nil {
		return errors.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// PatchItem handles PATCH /lists/:listId/:itemType/:itemId
func (ic *ItemController) PatchItem(c echo.Context) error {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return errors.JSON(c, err)
	}

	listID := c.Param("listId")
	itemType := c.Param("itemType")
	itemID := c.Param("itemId")
	if listID == "" || itemID == "" {
		return errors.JSON(c, errors.Invalid("list ID and item ID are required"))
	}

	var patch models.ItemPatch
	if err := c.Bind(&patch); err != nil {
		return errors.JSON(c, errors.Invalid("invalid request body"))
	}

	socketID := middlewares.GetSocketIDFromRequest(c)
	updated, err := ic.itemService.Patch(c.Request().Context(), listID, userID, socketID, itemType, itemID, patch)
	if err != nil {
		return errors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteItem handles DELETE /lists/:listId/:itemType/:itemId
func (ic *ItemController) DeleteItem(c echo.Context) error {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return errors.JSON(c, err)
	}

	listID := c.Param("listId")
	itemType := c.Param("itemType")
	itemID := c.Param("itemId")
	if listID == "" || itemID == "" {
		return errors.JSON(c, errors.Invalid("list ID and item ID are required"))
	}

	socketID := middlewares.GetSocketIDFromRequest(c)
	if err := ic.itemService.Delete(c.Request().Context(), listID, userID, socketID, itemType, itemID); err != nil {
		return errors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "item deleted"})
}
