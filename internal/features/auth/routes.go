package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/civicfix/api/internal/config"
	"github.com/civicfix/api/internal/features/cities"
	"github.com/civicfix/api/internal/pkg/cloudinary"
)

// RegisterRoutes wires the registration, login and self-service profile
// routes. The shared repository and auth middleware come from the caller so
// other features can reuse them.
func RegisterRoutes(router *gin.RouterGroup, cfg *config.Config, repo *Repository, citiesRepo *cities.Repository, cld *cloudinary.Service, requireAuth gin.HandlerFunc) {
	handler := NewHandler(repo, citiesRepo, cld, cfg)

	users := router.Group("/users")
	{
		users.POST("", handler.Register)
		users.POST("/login", handler.Login)
		users.GET("/profile", requireAuth, handler.GetProfile)
		users.PUT("/profile", requireAuth, handler.UpdateProfile)
	}
}
