package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	maxFilenameLength = 255
	uploadURLTTL      = 15 * time.Minute
)

// Image types accepted for post attachments
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type uploadURLRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

type uploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
	ExpiresAt int64  `json:"expiresAt"`
}

// CreateUploadURL handles POST /api/media/upload-url, issuing a
// presigned URL the client PUTs the image to before referencing its key
// in a post's imageUrls
func (h *Handler) CreateUploadURL(c *gin.Context) {
	if h.media == nil {
		respondErrorMessage(c, http.StatusServiceUnavailable, codeInternalError, "media storage is not configured")
		return
	}

	user := CurrentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, codeUnauthorized)
		return
	}

	var req uploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest)
		return
	}
	if err := validateFilename(req.Filename); err != nil {
		respondErrorMessage(c, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	if !allowedImageTypes[req.ContentType] {
		respondErrorMessage(c, http.StatusBadRequest, codeBadRequest, fmt.Sprintf("content type %s is not allowed", req.ContentType))
		return
	}

	key := fmt.Sprintf("%s-%s", uuid.New().String(), req.Filename)
	uploadURL, err := h.media.PresignUpload(c.Request.Context(), key, req.ContentType, uploadURLTTL)
	if err != nil {
		respondErrorMessage(c, http.StatusInternalServerError, codeInternalError, err.Error())
		return
	}

	c.JSON(http.StatusOK, uploadURLResponse{
		UploadURL: uploadURL,
		Key:       key,
		ExpiresAt: time.Now().Add(uploadURLTTL).Unix(),
	})
}

type deleteMediaRequest struct {
	Key string `json:"key"`
}

// DeleteMedia handles POST /api/media/delete, removing an uploaded
// image whose key is no longer referenced by any post
func (h *Handler) DeleteMedia(c *gin.Context) {
	if h.media == nil {
		respondErrorMessage(c, http.StatusServiceUnavailable, codeInternalError, "media storage is not configured")
		return
	}

	user := CurrentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, codeUnauthorized)
		return
	}

	var req deleteMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest)
		return
	}
	if req.Key == "" || strings.Contains(req.Key, "..") || strings.HasPrefix(req.Key, "/") {
		respondErrorMessage(c, http.StatusBadRequest, codeBadRequest, "invalid media key")
		return
	}

	if err := h.media.DeleteImage(c.Request.Context(), req.Key); err != nil {
		respondErrorMessage(c, http.StatusInternalServerError, codeInternalError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// validateFilename rejects empty, oversized and path-traversing names
func validateFilename(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if len(filename) > maxFilenameLength {
		return fmt.Errorf("filename too long (max %d characters)", maxFilenameLength)
	}
	if strings.Contains(filename, "..") || strings.Contains(filename, "/") || strings.Contains(filename, "\\") {
		return fmt.Errorf("filename contains invalid characters")
	}
	if filepath.Ext(filename) == "" {
		return fmt.Errorf("filename must have an extension")
	}
	return nil
}
