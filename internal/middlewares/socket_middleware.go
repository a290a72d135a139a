package middlewares

import (
	"github.com/labstack/echo/v4"
)

// SocketIDHeader carries the issuing connection's identifier so the
// resulting broadcast can exclude that connection from delivery.
const SocketIDHeader = "x-socket-id"

// GetSocketIDFromRequest returns the origin token for echo suppression.
// Empty when the request carries none; the event then fans out to everyone.
func GetSocketIDFromRequest(c echo.Context) string {
	return c.Request().Header.Get(SocketIDHeader)
}
