package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{InvalidArg("bad input"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{AlreadyExists("duplicate"), http.StatusConflict},
		{Forbidden("nope"), http.StatusForbidden},
		{Unauthorized("who"), http.StatusUnauthorized},
		{Internal("boom"), http.StatusInternalServerError},
		{New(CodeUnknown, "?"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), "for %v", tc.err)
	}
}

func TestHTTPStatusUnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("handler context: %w", NotFound("row missing"))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CodeInternal, "write failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "write failed")
	assert.Contains(t, err.Error(), "disk full")
}
