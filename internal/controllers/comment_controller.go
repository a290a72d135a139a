package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"listloop-server/internal/logics"
	"listloop-server/internal/middlewares"
	"listloop-server/pkg/errors"
)

// CommentController handles HTTP requests for item comments.
type CommentController struct {
	commentService *logics.CommentService
}

// NewCommentController returns a new instance of CommentController.
func NewCommentController(commentService *logics.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

type createCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// CreateComment handles POST /lists/:listId/:itemType/:itemId/comments
func (cc *CommentController) CreateComment(c echo.Context) error {
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

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return errors.JSON(c, errors.Invalid("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return errors.JSON(c, errors.Invalid(err.Error()))
	}

	socketID := middlewares.GetSocketIDFromRequest(c)
	comment, err := cc.commentService.CreateComment(c.Request().Context(),
		listID, userID, socketID, itemType, itemID, req.Content)
	if err != nil {
		return errors.JSON(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// ListComments handles GET /lists/:listId/:itemType/:itemId/comments
func (cc *CommentController) ListComments(c echo.Context) error {
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

	comments, err := cc.commentService.ListComments(c.Request().Context(), listID, userID, itemType, itemID)
	if err != nil {
		return errors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, comments)
}
