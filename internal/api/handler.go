// Package api implements the HTTP layer: route handlers, auth
// middleware, validation and response shaping over the store and auth
// provider capability interfaces.
package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hobbykit/internal/auth"
	"hobbykit/internal/database"
	"hobbykit/internal/media"
	"hobbykit/internal/store"
)

// Handler carries the collaborators every route depends on. Media and
// db may be nil: media endpoints then report unavailable and health
// skips the database section.
type Handler struct {
	store store.Store
	auth  auth.Provider
	media media.Service
	db    database.Service
}

// NewHandler creates the API handler. Pass nil for media or db when
// those collaborators are not configured.
func NewHandler(st store.Store, provider auth.Provider, mediaSvc media.Service, db database.Service) *Handler {
	return &Handler{
		store: st,
		auth:  provider,
		media: mediaSvc,
		db:    db,
	}
}

// Root handles GET /
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ping handles GET /ping
func (h *Handler) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong!")
}

// Health handles GET /health, reporting collaborator status
func (h *Handler) Health(c *gin.Context) {
	response := gin.H{"status": "ok"}

	if h.db != nil {
		response["database"] = h.db.Health(c.Request.Context())
	}
	if h.media != nil {
		mediaHealth := map[string]string{"status": "up"}
		if err := h.media.Health(c.Request.Context()); err != nil {
			mediaHealth["status"] = "down"
			mediaHealth["error"] = err.Error()
		}
		response["media"] = mediaHealth
	}

	c.JSON(http.StatusOK, response)
}

// isNonEmpty reports whether the value has content after trimming
func isNonEmpty(value string) bool {
	return strings.TrimSpace(value) != ""
}

// normalizeOptional trims an optional field, mapping blank values to nil
func normalizeOptional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
