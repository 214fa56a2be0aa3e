package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneMatchesPredefined(t *testing.T) {
	err := Clone(ErrNotFound, "student not found")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "student not found", err.Error())
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	appErr := FromError(fmt.Errorf("boom"))
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, "internal server error: boom", appErr.Error())
}

func TestFromErrorKeepsTyped(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Clone(ErrValidation, "bad gpa"))
	appErr := FromError(wrapped)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "bad gpa", appErr.Message)
}

func TestWithDetails(t *testing.T) {
	detailed := WithDetails(ErrValidation, []string{"gpa"})
	assert.Equal(t, []string{"gpa"}, detailed.Details)
	assert.Nil(t, ErrValidation.Details)
}
