package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hobbykit/internal/store"
)

type createCommunityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	ThemeColor  string `json:"themeColor"`
}

// ListCommunities handles GET /api/communities
func (h *Handler) ListCommunities(c *gin.Context) {
	communities, err := h.store.ListCommunities(c.Request.Context())
	if err != nil {
		respondErrorMessage(c, http.StatusInternalServerError, codeInternalError, err.Error())
		return
	}

	out := make([]CommunityResponse, 0, len(communities))
	for _, community := range communities {
		out = append(out, toCommunityResponse(community))
	}
	c.JSON(http.StatusOK, gin.H{"communities": out})
}

// CreateCommunity handles POST /api/communities
func (h *Handler) CreateCommunity(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, codeUnauthorized)
		return
	}

	var req createCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest)
		return
	}
	if !isNonEmpty(req.Name) {
		respondError(c, http.StatusBadRequest, codeBadRequest)
		return
	}

	community, err := h.store.CreateCommunity(c.Request.Context(), store.CreateCommunityParams{
		Name:        strings.TrimSpace(req.Name),
		Description: normalizeOptional(req.Description),
		Icon:        normalizeOptional(req.Icon),
		ThemeColor:  normalizeOptional(req.ThemeColor),
		CreatedBy:   user.ID,
	})
	if err != nil {
		respondErrorMessage(c, http.StatusInternalServerError, codeInternalError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"community": toCommunityResponse(*community)})
}
