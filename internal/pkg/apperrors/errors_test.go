package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs(t *testing.T) {
	assert.True(t, Is(ErrUserNotFound, ErrUserNotFound))
	assert.True(t, Is(ErrAnswerNotFound, ErrUserNotFound, ErrQuestionNotFound, ErrAnswerNotFound))
	assert.False(t, Is(ErrPostNotFound, ErrUserNotFound, ErrQuestionNotFound))

	wrapped := fmt.Errorf("loading user 7: %w", ErrUserNotFound)
	assert.True(t, Is(wrapped, ErrQuestionNotFound, ErrUserNotFound))
}

func TestCustomErrorUnwrapsToSentinel(t *testing.T) {
	err := NewResourceNotFoundError("question 7 does not exist")

	assert.True(t, errors.Is(err, ErrResourceNotFound))
	assert.Equal(t, "question 7 does not exist", err.Error())
}

func TestCustomErrorVariants(t *testing.T) {
	assert.True(t, errors.Is(NewConflictError("taken"), ErrConflict))
	assert.True(t, errors.Is(NewForbiddenError("nope"), ErrPermissionDenied))
	assert.True(t, errors.Is(NewValidationError("bad"), ErrValidationFailed))
	assert.True(t, errors.Is(NewBadRequestError("bad"), ErrBadRequest))
}
