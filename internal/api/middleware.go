package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hobbykit/internal/auth"
)

const userContextKey = "user"

// RequireUser resolves the bearer token and aborts with 401 when the
// caller cannot be identified. Runs before any handler mutation.
func RequireUser(provider auth.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: codeUnauthorized})
			return
		}

		user, err := provider.GetUser(c.Request.Context(), token)
		if err != nil {
			slog.Warn("Token resolution failed",
				"error", err.Error(),
				"request_id", c.GetString("request_id"),
			)
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: codeUnauthorized})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// OptionalUser resolves the bearer token when present but never rejects
// the request; anonymous callers proceed with no user attached.
func OptionalUser(provider auth.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token != "" {
			user, err := provider.GetUser(c.Request.Context(), token)
			if err == nil && user != nil {
				c.Set(userContextKey, user)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by the
// middleware, or nil for anonymous callers
func CurrentUser(c *gin.Context) *auth.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*auth.User)
	if !ok {
		return nil
	}
	return user
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header value; anything else counts as no token
func bearerToken(headerValue string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(headerValue, prefix) {
		return ""
	}
	return strings.TrimSpace(headerValue[len(prefix):])
}

// RequestID tags every request with a unique id for log correlation
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// RequestLogger logs every request with structured attributes, at a
// level matching the status class
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"request_id", c.GetString("request_id"),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", float64(time.Since(start).Milliseconds()),
			"client_ip", c.ClientIP(),
			"response_size", c.Writer.Size(),
		}
		if query := c.Request.URL.RawQuery; query != "" {
			attrs = append(attrs, "query", query)
		}
		if user := CurrentUser(c); user != nil {
			attrs = append(attrs, "user_id", user.ID)
		}

		switch {
		case status >= 500:
			slog.Error("Request failed - server error", attrs...)
		case status >= 400:
			slog.Warn("Request failed - client error", attrs...)
		default:
			slog.Info("Request completed", attrs...)
		}
	}
}
