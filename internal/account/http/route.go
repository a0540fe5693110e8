package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all account-related routes (including Auth).
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	// Public Routes
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	// Authenticated Routes
	g.GET("/me", authMiddleware, h.Me)

	// Admin Routes
	accountsGroup := g.Group("/accounts")
	accountsGroup.Use(authMiddleware, adminMiddleware)
	{
		accountsGroup.GET("", h.List)
	}
}
