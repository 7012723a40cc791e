package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"hobbykit/internal/store"
)

// Error codes returned in the error envelope
const (
	codeBadRequest    = "bad_request"
	codeUnauthorized  = "unauthorized"
	codeNotFound      = "not_found"
	codeConflict      = "conflict"
	codeAuthFailed    = "auth_failed"
	codeInternalError = "internal_error"
)

// ErrorResponse is the error envelope for every failure
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func respondError(c *gin.Context, status int, code string) {
	c.JSON(status, ErrorResponse{Error: code})
}

func respondErrorMessage(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: code, Message: message})
}

// CommunityResponse is the API shape of a community. Storage-level
// snake_case becomes camelCase here.
type CommunityResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Icon        *string   `json:"icon"`
	ThemeColor  *string   `json:"themeColor"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PostResponse is the API shape of a post. LikeCount and LikedByMe are
// computed from like data at response time, never stored on the post.
type PostResponse struct {
	ID          string    `json:"id"`
	CommunityID string    `json:"communityId"`
	UserID      string    `json:"userId"`
	Content     string    `json:"content"`
	ImageURLs   []string  `json:"imageUrls"`
	CreatedAt   time.Time `json:"createdAt"`
	LikeCount   int       `json:"likeCount"`
	LikedByMe   bool      `json:"likedByMe"`
}

func toCommunityResponse(c store.Community) CommunityResponse {
	return CommunityResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		ThemeColor:  c.ThemeColor,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
	}
}

func toPostResponse(p store.Post, likeCount int, likedByMe bool) PostResponse {
	imageURLs := p.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}
	return PostResponse{
		ID:          p.ID,
		CommunityID: p.CommunityID,
		UserID:      p.UserID,
		Content:     p.Content,
		ImageURLs:   imageURLs,
		CreatedAt:   p.CreatedAt,
		LikeCount:   likeCount,
		LikedByMe:   likedByMe,
	}
}
