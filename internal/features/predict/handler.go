package predict

import (
	"github.com/gin-gonic/gin"

	"github.com/civicfix/api/internal/pkg/cloudinary"
	"github.com/civicfix/api/internal/pkg/response"
)

type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// Predict godoc
// @Summary Suggest a category for an issue photo
// @Description Forwards the image to the classification service and relays
// @Description its prediction.
// @Tags predict
// @Accept mpfd
// @Produce json
// @Param file formData file true "Image file"
// @Success 200 {object} response.SuccessResponse{data=Prediction}
// @Failure 400 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /predict [post]
func (h *Handler) Predict(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "An image file is required", "INVALID_REQUEST")
		return
	}
	defer file.Close()

	if err := cloudinary.ValidateImageFile(header); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_FILE")
		return
	}

	prediction, err := h.client.Predict(c.Request.Context(), file, header.Filename)
	if err != nil {
		response.FromError(c, err, "Classification service is unavailable")
		return
	}
	response.Success(c, prediction)
}
