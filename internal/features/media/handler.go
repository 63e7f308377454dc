package media

import (
	"github.com/gin-gonic/gin"

	"github.com/civicfix/api/internal/pkg/cloudinary"
	"github.com/civicfix/api/internal/pkg/response"
)

type Handler struct {
	cloudinary *cloudinary.Service
}

func NewHandler(cld *cloudinary.Service) *Handler {
	return &Handler{cloudinary: cld}
}

// Upload godoc
// @Summary Upload an image
// @Description Stores the image and returns its durable URL. Issues,
// @Description comments and profiles reference uploaded URLs.
// @Tags media
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file (jpg, png, gif or webp, max 10MB)"
// @Success 201 {object} response.SuccessResponse{data=cloudinary.UploadResult}
// @Failure 400 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /media/upload [post]
func (h *Handler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		response.BadRequest(c, "An image file is required", "INVALID_REQUEST")
		return
	}
	defer file.Close()

	if err := cloudinary.ValidateImageFile(header); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_FILE")
		return
	}

	if h.cloudinary == nil {
		response.ServiceUnavailable(c, "Image storage is not configured", "UPSTREAM_UNAVAILABLE")
		return
	}

	result, err := h.cloudinary.UploadImage(c.Request.Context(), file, header.Filename)
	if err != nil {
		response.ServiceUnavailable(c, "Failed to store image", "UPSTREAM_UNAVAILABLE")
		return
	}
	response.Created(c, result)
}
