package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/stackit/stackit/internal/app/models/dto"
	"github.com/stackit/stackit/internal/pkg/apperrors"
)

// HandleAPIError maps domain errors to HTTP responses. Controllers funnel
// every service error through here so status codes stay consistent across
// the API.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrUserNotFound,
		apperrors.ErrQuestionNotFound,
		apperrors.ErrAnswerNotFound,
		apperrors.ErrVoteNotFound,
		apperrors.ErrPostNotFound,
		apperrors.ErrCommentNotFound,
		apperrors.ErrNotificationNotFound,
		apperrors.ErrResourceNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())))

	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")))

	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")))

	case errors.Is(err, apperrors.ErrTokenRevoked):
		c.JSON(401, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Token revoked")))

	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrInvalidFormat):
		c.JSON(401, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))

	case errors.Is(err, apperrors.ErrTokenNotFound):
		c.JSON(401, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Token not found")))

	case apperrors.Is(err, apperrors.ErrUsernameAlreadyExists,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrDuplicateVote,
		apperrors.ErrDuplicateLike,
		apperrors.ErrResourceAlreadyExists,
		apperrors.ErrConflict):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error())))

	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrBadRequest,
		apperrors.ErrInvalidVoteTarget,
		apperrors.ErrInvalidVoteType,
		apperrors.ErrTooManyTags,
		apperrors.ErrTooManyAttachments,
		apperrors.ErrAnswerQuestionMismatch,
		apperrors.ErrPromptTooLong):
		c.JSON(400, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))

	case errors.Is(err, apperrors.ErrSelfAction):
		c.JSON(400, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Operation cannot target your own account")))

	case errors.Is(err, apperrors.ErrAssistantUnavailable):
		c.JSON(503, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "Assistant service unavailable")))

	default:
		c.JSON(500, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}

// HandleValidationError reports a request binding failure
func HandleValidationError(c *gin.Context, err error) {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").
		WithDetails(err.Error())
	c.JSON(400, dto.NewErrorResponse(detail))
}
