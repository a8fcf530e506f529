package api

import (
	"net/http"
	"strings"
	"time"

	"interntrack/intern-track/internal/domain"
	"interntrack/intern-track/internal/logger"
	"interntrack/intern-track/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Constants for context keys
const (
	ContextPrincipalKey = "principal"
	ContextRequestIDKey = "requestID"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an ID and logs it once it completes.
// A well-formed incoming X-Request-ID is kept.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		switch {
		case status >= http.StatusInternalServerError:
			event = logger.Error()
		case status >= http.StatusBadRequest:
			event = logger.Warn()
		}
		event.
			Str("requestId", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("clientIp", c.ClientIP()).
			Msg("Request handled")
	}
}

// AuthMiddleware resolves the bearer token into a principal and stores it in
// the context. Any failure ends the request.
func AuthMiddleware(resolver service.PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Please authenticate")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortWithError(c, http.StatusUnauthorized, "Please authenticate")
			return
		}

		principal, err := resolver.Resolve(c.Request.Context(), parts[1])
		if err != nil {
			writeError(c, err)
			return
		}

		c.Set(ContextPrincipalKey, principal)
		c.Next()
	}
}

// RequireKind rejects principals of any other kind with 403.
// Must run AFTER AuthMiddleware.
func RequireKind(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := principalFromContext(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, "Please authenticate")
			return
		}
		if err := service.Authorize(principal, kind); err != nil {
			writeError(c, err)
			return
		}
		c.Next()
	}
}

// Helper function to get the principal from context (used by handlers)
func principalFromContext(c *gin.Context) (domain.Principal, bool) {
	raw, exists := c.Get(ContextPrincipalKey)
	if !exists {
		return domain.Principal{}, false
	}
	principal, ok := raw.(domain.Principal)
	return principal, ok
}
