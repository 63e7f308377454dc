package cities

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the city registry routes. Reads are public; writes are
// admin-gated by the middleware the caller provides.
func RegisterRoutes(router *gin.RouterGroup, repo *Repository, requireAuth, requireAdmin gin.HandlerFunc) {
	handler := NewHandler(repo)

	cities := router.Group("/cities")
	{
		cities.GET("", handler.List)
		cities.GET("/near", handler.Near)
		cities.GET("/:id", handler.GetByID)

		cities.POST("", requireAuth, requireAdmin, handler.Create)
		cities.PUT("/:id", requireAuth, requireAdmin, handler.Update)
		cities.DELETE("/:id", requireAuth, requireAdmin, handler.Delete)

		cities.POST("/:id/departments", requireAuth, requireAdmin, handler.AddDepartment)
		cities.DELETE("/:id/departments/:departmentId", requireAuth, requireAdmin, handler.RemoveDepartment)
	}
}
