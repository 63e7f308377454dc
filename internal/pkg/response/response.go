package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/civicfix/api/pkg/errors"
)

// ErrorResponse is the standard error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"Issue not found"`
	Code  string `json:"code,omitempty" example:"NOT_FOUND"`
}

// SuccessResponse is the standard success envelope.
type SuccessResponse struct {
	Status string      `json:"status" example:"success"`
	Data   interface{} `json:"data"`
}

// Success sends a 200 OK response with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Status: "success",
		Data:   data,
	})
}

// Created sends a 201 Created response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Status: "success",
		Data:   data,
	})
}

// Error sends an error response with a custom status code and message.
func Error(c *gin.Context, statusCode int, message string, errorCode ...string) {
	code := ""
	if len(errorCode) > 0 {
		code = errorCode[0]
	}

	c.JSON(statusCode, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func BadRequest(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusBadRequest, message, errorCode...)
}

func Unauthorized(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusUnauthorized, message, errorCode...)
}

func Forbidden(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusForbidden, message, errorCode...)
}

func NotFound(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusNotFound, message, errorCode...)
}

func Conflict(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusConflict, message, errorCode...)
}

func InternalServerError(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusInternalServerError, message, errorCode...)
}

func ServiceUnavailable(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusServiceUnavailable, message, errorCode...)
}

// FromError maps the application error taxonomy onto HTTP status codes.
// Unrecognized errors fall through to 500.
func FromError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		NotFound(c, message, "NOT_FOUND")
	case errors.Is(err, apperrors.ErrUnauthorized):
		Unauthorized(c, message, "UNAUTHORIZED")
	case errors.Is(err, apperrors.ErrForbidden):
		Forbidden(c, message, "FORBIDDEN")
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrBadRequest):
		BadRequest(c, message, "VALIDATION_FAILED")
	case errors.Is(err, apperrors.ErrDuplicate):
		Conflict(c, message, "ALREADY_EXISTS")
	case errors.Is(err, apperrors.ErrUpstream):
		ServiceUnavailable(c, message, "UPSTREAM_UNAVAILABLE")
	default:
		InternalServerError(c, message, "INTERNAL_ERROR")
	}
}
