package errors

// Error codes shared by every layer. Services attach them at the point of
// failure, controllers map them to HTTP statuses.
const (
	ErrInternal        = "INTERNAL"
	ErrNotFound        = "NOT_FOUND"
	ErrInvalidArgument = "INVALID_ARGUMENT"
	ErrUnauthenticated = "UNAUTHENTICATED"
	ErrUnauthorized    = "UNAUTHORIZED"
	ErrConflict        = "CONFLICT"
	ErrTimeout         = "TIMEOUT"
	ErrUpstream        = "UPSTREAM"
	ErrNotImplemented  = "NOT_IMPLEMENTED"
)

var codeMapping = map[string]int{
	ErrInternal:        500,
	ErrNotFound:        404,
	ErrInvalidArgument: 400,
	ErrUnauthenticated: 401,
	ErrUnauthorized:    403,
	ErrConflict:        409,
	ErrTimeout:         504,
	ErrUpstream:        502,
	ErrNotImplemented:  501,
}

// HTTPStatus returns the HTTP status for an error code, 500 when unknown.
func HTTPStatus(code string) int {
	if status, ok := codeMapping[code]; ok {
		return status
	}
	return 500
}
