package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stackit/stackit/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"user not found", apperrors.ErrUserNotFound, http.StatusNotFound},
		{"question not found", apperrors.ErrQuestionNotFound, http.StatusNotFound},
		{"notification not found", apperrors.ErrNotificationNotFound, http.StatusNotFound},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"token expired", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"token revoked", apperrors.ErrTokenRevoked, http.StatusUnauthorized},
		{"token not found", apperrors.ErrTokenNotFound, http.StatusUnauthorized},
		{"username taken", apperrors.ErrUsernameAlreadyExists, http.StatusConflict},
		{"duplicate vote", apperrors.ErrDuplicateVote, http.StatusConflict},
		{"invalid vote type", apperrors.ErrInvalidVoteType, http.StatusBadRequest},
		{"too many tags", apperrors.ErrTooManyTags, http.StatusBadRequest},
		{"answer question mismatch", apperrors.ErrAnswerQuestionMismatch, http.StatusBadRequest},
		{"prompt too long", apperrors.ErrPromptTooLong, http.StatusBadRequest},
		{"self action", apperrors.ErrSelfAction, http.StatusBadRequest},
		{"assistant unavailable", apperrors.ErrAssistantUnavailable, http.StatusServiceUnavailable},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestHandleAPIErrorWrappedErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	wrapped := fmt.Errorf("loading question 7: %w", apperrors.ErrQuestionNotFound)
	HandleAPIError(c, wrapped)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
