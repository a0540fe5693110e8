package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers session routes plus the public slot-resolution
// endpoint under the expert path.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// Public: browse availability without an account.
	g.GET("/experts/:id/slots", h.Slots)

	sessions := g.Group("/sessions")
	sessions.Use(authMiddleware)
	{
		sessions.POST("", h.Create)
		sessions.GET("", h.List)
		sessions.GET("/:id", h.Get)
		sessions.PATCH("/:id", h.Update)
	}
}
