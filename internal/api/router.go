package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with middleware and all routes
func NewRouter(h *Handler, corsAllowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/", h.Root)
	r.GET("/ping", h.Ping)
	r.GET("/health", h.Health)

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/auth/register", h.Register)
		apiGroup.POST("/auth/login", h.Login)

		apiGroup.GET("/communities", h.ListCommunities)
		apiGroup.POST("/communities", RequireUser(h.auth), h.CreateCommunity)

		apiGroup.POST("/posts", RequireUser(h.auth), h.CreatePost)
		apiGroup.GET("/posts", OptionalUser(h.auth), h.ListPosts)
		apiGroup.GET("/feed", OptionalUser(h.auth), h.ListPosts)
		apiGroup.GET("/posts/:id", OptionalUser(h.auth), h.GetPost)

		apiGroup.POST("/likes", RequireUser(h.auth), h.LikePost)
		apiGroup.POST("/likes/unlike", RequireUser(h.auth), h.UnlikePost)

		apiGroup.POST("/media/upload-url", RequireUser(h.auth), h.CreateUploadURL)
		apiGroup.POST("/media/delete", RequireUser(h.auth), h.DeleteMedia)
	}

	return r
}
