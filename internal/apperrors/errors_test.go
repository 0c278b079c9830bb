package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("subscription not found")

	assert.Equal(t, 404, err.Code)
	assert.Contains(t, err.Error(), "subscription not found")
	assert.ErrorIs(t, err, ErrNotFound, "should satisfy errors.Is against the sentinel")

	// Handlers match on the sentinel through any number of wraps.
	wrapped := fmt.Errorf("failed to find subscription: %w", err)
	assert.ErrorIs(t, wrapped, ErrNotFound)
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewAppError(500, "failed to begin transaction", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to begin transaction")
	assert.Contains(t, err.Error(), "connection refused")
}
