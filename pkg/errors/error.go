package errors

import (
	"errors"
	"fmt"
)

// Re-export the standard library helpers so callers only import one package.
var (
	New    = errors.New
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// AppError carries a machine-readable code alongside the message and an
// optional wrapped cause.
type AppError struct {
	code    string
	message string
	err     error
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

func (e *AppError) Code() string {
	return e.code
}

func (e *AppError) Unwrap() error {
	return e.err
}

// NewAppError builds an error with an explicit code.
func NewAppError(code string, message string, err error) *AppError {
	return &AppError{
		code:    code,
		message: message,
		err:     err,
	}
}

// Code extracts the error code, defaulting to INTERNAL for plain errors.
func Code(err error) string {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.Code()
	}
	return ErrInternal
}

// Wrap adds a message to an error, preserving an existing code.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if As(err, &appErr) {
		return NewAppError(appErr.Code(), message, err)
	}
	return NewAppError(ErrInternal, message, err)
}

// Constructors for the common cases. Handlers lean on these so the
// seriousness of a failure is decided where it happens, not at the edge.

func NotFound(message string) error {
	return NewAppError(ErrNotFound, message, nil)
}

func Invalid(message string) error {
	return NewAppError(ErrInvalidArgument, message, nil)
}

func Unauthenticated(message string) error {
	return NewAppError(ErrUnauthenticated, message, nil)
}

func Forbidden(message string) error {
	return NewAppError(ErrUnauthorized, message, nil)
}

func Conflict(message string) error {
	return NewAppError(ErrConflict, message, nil)
}

func Internal(message string, err error) error {
	return NewAppError(ErrInternal, message, err)
}

// Upstream marks failures of external collaborators (AI completion, broadcast
// transport) so callers can distinguish them from our own faults.
func Upstream(message string, err error) error {
	return NewAppError(ErrUpstream, message, err)
}
