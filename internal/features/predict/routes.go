package predict

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the classification proxy.
func RegisterRoutes(router *gin.RouterGroup, client *Client) {
	handler := NewHandler(client)
	router.POST("/predict", handler.Predict)
}
