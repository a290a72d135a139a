package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"listloop-server/internal/logics"
	"listloop-server/internal/middlewares"
	"listloop-server/pkg/errors"
)

// UserController handles HTTP requests for user lookup.
type UserController struct {
	userService *logics.UserService
}

// NewUserController returns a new instance of UserController.
func NewUserController(userService *logics.UserService) *UserController {
	return &UserController{userService: userService}
}

// SearchUsers handles GET /users/search?q=<prefix>
func (uc *UserController) SearchUsers(c echo.Context) error {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return errors.JSON(c, err)
	}

	users, err := uc.userService.SearchUsers(c.Request().Context(), c.QueryParam("q"), userID)
	if err != nil {
		return errors.JSON(c, err)
	}
	return c.JSON(http.StatusOK, users)
}
