package api

import (
	"errors"
	"net/http"

	"interntrack/intern-track/internal/apperrors"
	"interntrack/intern-track/internal/logger"
	"interntrack/intern-track/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// writeError maps a service error to its status code. Internal causes are
// logged, never returned.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		abortWithError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, apperrors.ErrUnauthenticated), errors.Is(err, apperrors.ErrForbidden):
		status := http.StatusUnauthorized
		if errors.Is(err, apperrors.ErrForbidden) {
			status = http.StatusForbidden
		}
		abortWithError(c, status, "Please authenticate")
	case errors.Is(err, apperrors.ErrNotFound):
		abortWithError(c, http.StatusNotFound, apperrors.Message(err, "Not found"))
	case errors.Is(err, apperrors.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, apperrors.Message(err, "Invalid request"))
	case errors.Is(err, apperrors.ErrDuplicateKey):
		abortWithError(c, http.StatusConflict, apperrors.Message(err, "Record already exists"))
	default:
		cause := errors.Unwrap(err)
		if cause == nil {
			cause = err
		}
		logger.Error().Err(cause).Str("requestId", c.GetString(ContextRequestIDKey)).Msg("Request failed")
		abortWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// writeBindError reports a request body that failed to bind or validate.
// Parser errors are logged; only validation messages reach the client.
func writeBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		abortWithError(c, http.StatusBadRequest, "File too large")
		return
	}
	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) {
		abortWithError(c, http.StatusBadRequest, validation.Message(err))
		return
	}
	logger.Debug().Err(err).Str("requestId", c.GetString(ContextRequestIDKey)).Msg("Request body rejected")
	abortWithError(c, http.StatusBadRequest, "Invalid request body")
}
