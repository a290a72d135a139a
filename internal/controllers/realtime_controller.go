package controllers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"listloop-server/internal/logics"
	"listloop-server/internal/middlewares"
	"listloop-server/internal/realtime"
	"listloop-server/pkg/errors"
)

// RealtimeController authorizes channel subscriptions. A caller may
// join a list channel only with access to that list and a user channel
// only for themselves.
type RealtimeController struct {
	accessService *logics.AccessService
	channelSecret string
}

// NewRealtimeController returns a new instance of RealtimeController.
func NewRealtimeController(accessService *logics.AccessService, channelSecret string) *RealtimeController {
	return &RealtimeController{
		accessService: accessService,
		channelSecret: channelSecret,
	}
}

type realtimeAuthRequest struct {
	SocketID string `json:"socketId" validate:"required"`
	Channel  string `json:"channel" validate:"required"`
}

// Authorize handles POST /realtime/auth
func (rc *RealtimeController) Authorize(c echo.Context) error {
	userID, err := middlewares.GetUserIDFromContext(c)
	if err != nil {
		return errors.JSON(c, err)
	}

	var req realtimeAuthRequest
	if err := c.Bind(&req); err != nil {
		return errors.JSON(c, errors.Invalid("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return errors.JSON(c, errors.Invalid(err.Error()))
	}

	switch {
	case strings.HasPrefix(req.Channel, "list:"):
		listID := strings.TrimPrefix(req.Channel, "list:")
		ok, err := rc.accessService.HasListAccess(c.Request().Context(), listID, userID)
		if err != nil {
			return errors.JSON(c, err)
		}
		if !ok {
			return errors.JSON(c, errors.Forbidden("you do not have access to this channel"))
		}
	case strings.HasPrefix(req.Channel, "user:"):
		if strings.TrimPrefix(req.Channel, "user:") != userID {
			return errors.JSON(c, errors.Forbidden("you may only join your own channel"))
		}
	default:
		return errors.JSON(c, errors.Invalid("unknown channel"))
	}

	auth := realtime.SignChannelGrant(rc.channelSecret, req.SocketID, req.Channel)
	return c.JSON(http.StatusOK, map[string]string{"auth": auth})
}
