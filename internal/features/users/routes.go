package users

import (
	"github.com/gin-gonic/gin"

	"github.com/civicfix/api/internal/features/auth"
)

// RegisterRoutes wires the admin account-management routes under the same
// /users group the auth feature uses for self-service.
func RegisterRoutes(router *gin.RouterGroup, repo *auth.Repository, requireAuth, requireAdmin gin.HandlerFunc) {
	handler := NewHandler(repo)

	users := router.Group("/users")
	{
		users.GET("", requireAuth, requireAdmin, handler.List)
		users.GET("/:id", requireAuth, requireAdmin, handler.GetByID)
		users.PUT("/:id", requireAuth, requireAdmin, handler.Update)
		users.DELETE("/:id", requireAuth, requireAdmin, handler.Delete)
	}
}
