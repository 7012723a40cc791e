package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hobbykit/internal/store"
)

type createPostRequest struct {
	CommunityID string    `json:"communityId"`
	Content     string    `json:"content"`
	ImageURLs   *[]string `json:"imageUrls"`
}

// CreatePost handles POST /api/posts
func (h *Handler) CreatePost(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, codeUnauthorized)
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest)
		return
	}
	if !isNonEmpty(req.CommunityID) || !isNonEmpty(req.Content) {
		respondError(c, http.StatusBadRequest, codeBadRequest)
		return
	}

	community, err := h.store.GetCommunityByID(c.Request.Context(), req.CommunityID)
	if err != nil {
		respondErrorMessage(c, http.StatusInternalServerError, codeInternalError, err.Error())
		return
	}
	if community == nil {
		respondError(c, http.StatusNotFound, codeNotFound)
		return
	}

	imageURLs := []string{}
	if req.ImageURLs != nil {
		imageURLs = *req.ImageURLs
	}
	post, err := h.store.CreatePost(c.Request.Context(), store.CreatePostParams{
		CommunityID: req.CommunityID,
		UserID:      user.ID,
		Content:     strings.TrimSpace(req.Content),
		ImageURLs:   imageURLs,
	})
	if err != nil {
		respondErrorMessage(c, http.StatusInternalServerError, codeInternalError, err.Error())
		return
	}

	// A brand-new post has no likes yet
	c.JSON(http.StatusOK, gin.H{"post": toPostResponse(*post, 0, false)})
}

// ListPosts handles GET /api/posts and GET /api/feed
func (h *Handler) ListPosts(c *gin.Context) {
	limit, offset, err := parsePagination(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest)
		return
	}

	posts, err := h.store.ListPosts(c.Request.Context(), store.ListPostsParams{
		CommunityID: c.Query("communityId"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		respondErrorMessage(c, http.StatusInternalServerError, codeInternalError, err.Error())
		return
	}

	postIDs := make([]string, 0, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.ID)
	}

	// Two batched calls for the whole page instead of per-post lookups
	likeCounts, err := h.store.CountLikes(c.Request.Context(), postIDs)
	if err != nil {
		respondErrorMessage(c, http.StatusInternalServerError, codeInternalError, err.Error())
		return
	}
	likedIDs := map[string]struct{}{}
	if user := CurrentUser(c); user != nil {
		likedIDs, err = h.store.GetLikedPostIDs(c.Request.Context(), postIDs, user.ID)
		if err != nil {
			respondErrorMessage(c, http.StatusInternalServerError, codeInternalError, err.Error())
			return
		}
	}

	out := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		_, liked := likedIDs[post.ID]
		out = append(out, toPostResponse(post, likeCounts[post.ID], liked))
	}
	c.JSON(http.StatusOK, gin.H{
		"posts":  out,
		"limit":  limit,
		"offset": offset,
	})
}

// GetPost handles GET /api/posts/:id
func (h *Handler) GetPost(c *gin.Context) {
	postID := c.Param("id")

	post, err := h.store.GetPostByID(c.Request.Context(), postID)
	if err != nil {
		respondErrorMessage(c, http.StatusInternalServerError, codeInternalError, err.Error())
		return
	}
	if post == nil {
		respondError(c, http.StatusNotFound, codeNotFound)
		return
	}

	likeCounts, err := h.store.CountLikes(c.Request.Context(), []string{postID})
	if err != nil {
		respondErrorMessage(c, http.StatusInternalServerError, codeInternalError, err.Error())
		return
	}
	likedByMe := false
	if user := CurrentUser(c); user != nil {
		likedIDs, err := h.store.GetLikedPostIDs(c.Request.Context(), []string{postID}, user.ID)
		if err != nil {
			respondErrorMessage(c, http.StatusInternalServerError, codeInternalError, err.Error())
			return
		}
		_, likedByMe = likedIDs[postID]
	}

	c.JSON(http.StatusOK, gin.H{"post": toPostResponse(*post, likeCounts[postID], likedByMe)})
}
