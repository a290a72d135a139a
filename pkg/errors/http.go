package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ToHTTPError converts any error into an Echo HTTP error using the code
// mapping. Echo errors pass through untouched.
func ToHTTPError(err error) *echo.HTTPError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		return echo.NewHTTPError(HTTPStatus(appErr.Code()), appErr.Error())
	}

	if echoErr, ok := err.(*echo.HTTPError); ok {
		return echoErr
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// JSON writes the error as the handler response body, shaped as
// {"error": "..."} the way the rest of the API reports failures.
func JSON(c echo.Context, err error) error {
	httpErr := ToHTTPError(err)
	msg, ok := httpErr.Message.(string)
	if !ok {
		msg = http.StatusText(httpErr.Code)
	}
	return c.JSON(httpErr.Code, map[string]string{"error": msg})
}
