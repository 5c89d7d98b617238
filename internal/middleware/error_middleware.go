package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
	"github.com/yigit/alumnihub/internal/pkg/logger"
	"github.com/yigit/alumnihub/internal/pkg/store"
)

// apiError is one row of the error table: the sentinel, its status and its code
type apiError struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// apiErrors is checked in order; the first match wins
var apiErrors = []apiError{
	{apperrors.ErrAlreadyRegistered, http.StatusConflict, dto.ErrorCodeAlreadyRegistered, "Already registered for this event"},
	{apperrors.ErrEventClosed, http.StatusConflict, dto.ErrorCodeEventClosed, "Event is not open for registration"},
	{apperrors.ErrEventFull, http.StatusConflict, dto.ErrorCodeEventFull, "Event is full"},
	{apperrors.ErrEmptyComment, http.StatusBadRequest, dto.ErrorCodeEmptyComment, "Comment content must not be empty"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{store.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},
	{store.ErrInvalidValue, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Malformed identifier or value"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrInvalidFormat, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token format"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required"},
}

// HandleAPIError maps err onto the standard error response
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classify(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Unhandled error while serving request")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func classify(err error) (int, *dto.ErrorDetail) {
	for _, e := range apiErrors {
		if !errors.Is(err, e.target) {
			continue
		}
		detail := dto.NewErrorDetail(e.code, e.message)
		var custom *apperrors.CustomError
		if errors.As(err, &custom) {
			if custom.Message != "" {
				detail.Message = custom.Message
			}
			if custom.Field != "" {
				detail = detail.WithField(custom.Field)
			}
		}
		if e.target == apperrors.ErrEmptyComment {
			detail = detail.WithField("content")
		}
		return e.status, detail
	}
	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
}

// Recovery turns panics into the standard 500 response
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().
			Interface("panic", recovered).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	})
}
