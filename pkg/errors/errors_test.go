package errors_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"listloop-server/pkg/errors"
)

func TestErrorCodes(t *testing.T) {
	t.Run("constructors set their codes", func(t *testing.T) {
		assert.Equal(t, errors.ErrNotFound, errors.Code(errors.NotFound("missing")))
		assert.Equal(t, errors.ErrInvalidArgument, errors.Code(errors.Invalid("bad")))
		assert.Equal(t, errors.ErrUnauthenticated, errors.Code(errors.Unauthenticated("who")))
		assert.Equal(t, errors.ErrUnauthorized, errors.Code(errors.Forbidden("no")))
		assert.Equal(t, errors.ErrConflict, errors.Code(errors.Conflict("dup")))
		assert.Equal(t, errors.ErrUpstream, errors.Code(errors.Upstream("ai down", nil)))
	})

	t.Run("plain errors default to internal", func(t *testing.T) {
		assert.Equal(t, errors.ErrInternal, errors.Code(errors.New("boom")))
	})

	t.Run("wrap preserves the original code", func(t *testing.T) {
		err := errors.Wrap(errors.NotFound("missing"), "while loading")
		assert.Equal(t, errors.ErrNotFound, errors.Code(err))
		assert.Contains(t, err.Error(), "while loading")
	})

	t.Run("wrap of nil is nil", func(t *testing.T) {
		assert.NoError(t, errors.Wrap(nil, "context"))
	})
}

func TestHTTPStatus(t *testing.T) {
	cases := map[string]int{
		errors.ErrNotFound:        http.StatusNotFound,
		errors.ErrInvalidArgument: http.StatusBadRequest,
		errors.ErrUnauthenticated: http.StatusUnauthorized,
		errors.ErrUnauthorized:    http.StatusForbidden,
		errors.ErrConflict:        http.StatusConflict,
		errors.ErrUpstream:        http.StatusBadGateway,
		errors.ErrInternal:        http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, errors.HTTPStatus(code), code)
	}

	t.Run("unknown code maps to 500", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, errors.HTTPStatus("SOMETHING_ELSE"))
	})
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := errors.Internal("wrapper", cause)
	assert.True(t, errors.Is(err, cause))
}
