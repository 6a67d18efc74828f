package errorutil_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/task-tracker/pkg/util/errorutil"
)

func TestToDomainErrorPassThrough(t *testing.T) {
	original := errorutil.NewConflict("Email already in use", nil)
	mapped := errorutil.ToDomainError(original)
	require.NotNil(t, mapped)
	assert.Equal(t, "CONFLICT", mapped.Code)
	assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
	assert.Equal(t, "Email already in use", mapped.Message)
}

func TestToDomainErrorNoRows(t *testing.T) {
	mapped := errorutil.ToDomainError(pgx.ErrNoRows)
	require.NotNil(t, mapped)
	assert.Equal(t, "NOT_FOUND", mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorDeadline(t *testing.T) {
	mapped := errorutil.ToDomainError(context.DeadlineExceeded)
	require.NotNil(t, mapped)
	assert.Equal(t, "SERVICE_UNAVAILABLE", mapped.Code)
	assert.Equal(t, http.StatusServiceUnavailable, mapped.HTTPStatus)
}

func TestToDomainErrorWrapsUnknownErrors(t *testing.T) {
	cause := errors.New("connection reset")
	mapped := errorutil.ToDomainError(cause)
	require.NotNil(t, mapped)
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	// store error text never leaks into the client-facing message
	assert.Equal(t, "internal server error", mapped.Message)
	assert.ErrorIs(t, mapped, cause)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, errorutil.ToDomainError(nil))
}
