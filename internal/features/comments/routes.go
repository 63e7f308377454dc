package comments

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the comment routes. Reading an issue's thread is
// public; everything else requires auth.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, requireAuth gin.HandlerFunc) {
	comments := router.Group("/comments")
	{
		comments.GET("/issue/:issueId", handler.ListByIssue)

		comments.POST("", requireAuth, handler.Create)
		comments.PUT("/:id", requireAuth, handler.Update)
		comments.DELETE("/:id", requireAuth, handler.Delete)
		comments.POST("/:id/like", requireAuth, handler.Like)
	}
}
