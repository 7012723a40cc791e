package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hobbykit/internal/store"
)

type likeRequest struct {
	PostID string `json:"postId"`
}

// LikePost handles POST /api/likes
func (h *Handler) LikePost(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, codeUnauthorized)
		return
	}

	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest)
		return
	}
	if !isNonEmpty(req.PostID) {
		respondError(c, http.StatusBadRequest, codeBadRequest)
		return
	}

	post, err := h.store.GetPostByID(c.Request.Context(), req.PostID)
	if err != nil {
		respondErrorMessage(c, http.StatusInternalServerError, codeInternalError, err.Error())
		return
	}
	if post == nil {
		respondError(c, http.StatusNotFound, codeNotFound)
		return
	}

	result, err := h.store.LikePost(c.Request.Context(), req.PostID, user.ID)
	if err != nil {
		respondErrorMessage(c, http.StatusInternalServerError, codeInternalError, err.Error())
		return
	}
	if result == store.LikeExists {
		respondError(c, http.StatusConflict, codeConflict)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": true})
}

// UnlikePost handles POST /api/likes/unlike. Removing an absent like is
// a no-op, not an error.
func (h *Handler) UnlikePost(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, codeUnauthorized)
		return
	}

	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest)
		return
	}
	if !isNonEmpty(req.PostID) {
		respondError(c, http.StatusBadRequest, codeBadRequest)
		return
	}

	post, err := h.store.GetPostByID(c.Request.Context(), req.PostID)
	if err != nil {
		respondErrorMessage(c, http.StatusInternalServerError, codeInternalError, err.Error())
		return
	}
	if post == nil {
		respondError(c, http.StatusNotFound, codeNotFound)
		return
	}

	if _, err := h.store.UnlikePost(c.Request.Context(), req.PostID, user.ID); err != nil {
		respondErrorMessage(c, http.StatusInternalServerError, codeInternalError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": false})
}
