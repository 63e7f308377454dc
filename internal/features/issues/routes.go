package issues

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the issue routes. Reads are public; everything that
// writes requires auth, and creation additionally runs through the
// per-user rate limiter when one is configured.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, requireAuth gin.HandlerFunc, createLimit gin.HandlerFunc) {
	issues := router.Group("/issues")
	{
		issues.GET("", handler.List)

		issues.GET("/user/issues", requireAuth, handler.MyIssues)
		issues.GET("/department/issues", requireAuth, handler.DepartmentIssues)

		issues.GET("/:id", handler.GetByID)

		create := []gin.HandlerFunc{requireAuth}
		if createLimit != nil {
			create = append(create, createLimit)
		}
		issues.POST("", append(create, handler.Create)...)

		issues.PUT("/:id", requireAuth, handler.Update)
		issues.DELETE("/:id", requireAuth, handler.Delete)
		issues.POST("/:id/upvote", requireAuth, handler.Upvote)
		issues.POST("/:id/downvote", requireAuth, handler.Downvote)
		issues.PUT("/:id/feedback", requireAuth, handler.Feedback)
	}
}
