package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodeMapping(t *testing.T) {
	cases := []struct {
		errType ErrorType
		status  int
	}{
		{AuthError, http.StatusUnauthorized},
		{UnauthorizedError, http.StatusForbidden},
		{NotFoundError, http.StatusNotFound},
		{ValidationError, http.StatusBadRequest},
		{BadRequestError, http.StatusBadRequest},
		{ConflictError, http.StatusConflict},
		{ExternalServiceError, http.StatusBadGateway},
		{DatabaseError, http.StatusInternalServerError},
		{ConfigError, http.StatusInternalServerError},
		{MigrationError, http.StatusInternalServerError},
		{InternalError, http.StatusInternalServerError},
		{UnknownError, http.StatusInternalServerError},
	}
	for _, c := range cases {
		err := NewAppError(c.errType, "boom", nil)
		assert.Equal(t, c.status, err.StatusCode(), "type %d", c.errType)
	}
}

func TestErrorIncludesWrappedCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDatabaseError("failed to query posts", cause)

	assert.Equal(t, "failed to query posts: connection refused", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestToResponseHidesCause(t *testing.T) {
	err := NewDatabaseError("failed to query posts", errors.New("connection refused"))

	resp := err.ToResponse()
	assert.Equal(t, "failed to query posts", resp.Error)
}

func TestFromErrorUnwrapsChains(t *testing.T) {
	inner := NewNotFoundError("post not found", nil)
	wrapped := fmt.Errorf("handling request: %w", inner)

	got, ok := FromError(wrapped)
	require.True(t, ok)
	assert.Equal(t, inner, got)

	_, ok = FromError(errors.New("plain"))
	assert.False(t, ok)

	_, ok = FromError(nil)
	assert.False(t, ok)
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("x", nil)))
	assert.True(t, IsAuthError(NewAuthError("x", nil)))
	assert.True(t, IsUnauthorizedError(NewUnauthorizedError("x", nil)))
	assert.True(t, IsValidationError(NewValidationError("x", nil)))
	assert.True(t, IsBadRequestError(NewBadRequestError("x", nil)))
	assert.True(t, IsConflictError(NewConflictError("x", nil)))
	assert.True(t, IsExternalServiceError(NewExternalServiceError("x", nil)))

	// Predicates see through wrapping and reject foreign types.
	wrapped := fmt.Errorf("outer: %w", NewConflictError("taken", nil))
	assert.True(t, IsConflictError(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.False(t, IsConflictError(errors.New("plain")))
}
