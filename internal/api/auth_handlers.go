package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"hobbykit/internal/auth"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	h.authenticate(c, h.auth.SignUp)
}

// Login handles POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	h.authenticate(c, h.auth.SignIn)
}

// authenticate runs the shared register/login flow; both endpoints
// validate the same credential shape and return the provider's session
// verbatim. Provider rejections map to 400 auth_failed with the
// provider's reason, never its internal error type.
func (h *Handler) authenticate(c *gin.Context, call func(ctx context.Context, email, password string) (*auth.Session, error)) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest)
		return
	}
	if !isNonEmpty(req.Email) || !isNonEmpty(req.Password) {
		respondError(c, http.StatusBadRequest, codeBadRequest)
		return
	}

	session, err := call(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondErrorMessage(c, http.StatusBadRequest, codeAuthFailed, err.Error())
		return
	}

	c.JSON(http.StatusOK, session)
}
