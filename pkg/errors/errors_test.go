package errors

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NewQueryError("failed to list appointments", sql.ErrConnDone)
	assert.Equal(t, "QUERY: failed to list appointments: sql: connection is already closed", err.Error())

	assert.Equal(t, "NOT_FOUND: appointment 7 not found", NewNotFoundError("appointment 7 not found").Error())
}

func TestAppError_Unwrap(t *testing.T) {
	err := NewQueryError("failed", sql.ErrNoRows)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestIsType(t *testing.T) {
	wrapped := fmt.Errorf("loading doctor: %w", NewNotFoundError("doctor 3 not found"))

	assert.True(t, IsType(wrapped, ErrorTypeNotFound))
	assert.False(t, IsType(wrapped, ErrorTypeValidation))
	assert.False(t, IsType(fmt.Errorf("plain"), ErrorTypeNotFound))
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrorTypeInvalidFilter, TypeOf(NewInvalidFilterError("status", "done")))
	assert.Equal(t, ErrorTypeInternal, TypeOf(fmt.Errorf("plain")))
}

func TestNewInvalidFilterError_Message(t *testing.T) {
	err := NewInvalidFilterError("status", "done")
	assert.Equal(t, `unrecognized value "done" for filter "status"`, err.Message)
}

func TestPublic(t *testing.T) {
	assert.Equal(t, "doctor 3 not found", Public(NewNotFoundError("doctor 3 not found")))
	assert.Equal(t, "typesense unavailable", Public(NewExternalError("typesense unavailable", sql.ErrConnDone)))
	assert.Equal(t, "internal server error", Public(NewQueryError("failed to list doctors", sql.ErrConnDone)))
	assert.Equal(t, "internal server error", Public(fmt.Errorf("plain")))
}
