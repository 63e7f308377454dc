package media

import (
	"github.com/gin-gonic/gin"

	"github.com/civicfix/api/internal/pkg/cloudinary"
)

// RegisterRoutes wires the media upload endpoint.
func RegisterRoutes(router *gin.RouterGroup, cld *cloudinary.Service, requireAuth gin.HandlerFunc) {
	handler := NewHandler(cld)

	media := router.Group("/media")
	{
		media.POST("/upload", requireAuth, handler.Upload)
	}
}
