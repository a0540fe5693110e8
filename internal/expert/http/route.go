package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers expert profile routes. Slot resolution lives in
// the session module's routes since it needs the booking set.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	experts := g.Group("/experts")
	{
		experts.GET("", h.List)
		experts.GET("/:id", h.Get)

		experts.POST("", authMiddleware, h.Create)
		experts.PATCH("/:id", authMiddleware, h.Update)
		experts.PUT("/:id/schedule", authMiddleware, h.ReplaceSchedule)
		experts.POST("/:id/avatar", authMiddleware, h.UploadAvatar)
	}
}
