// Package users is the admin view over accounts. Self-service registration,
// login and profiles live in the auth feature.
package users

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/civicfix/api/internal/features/auth"
	"github.com/civicfix/api/internal/pkg/access"
	"github.com/civicfix/api/internal/pkg/response"
)

type Handler struct {
	repo *auth.Repository
}

func NewHandler(repo *auth.Repository) *Handler {
	return &Handler{repo: repo}
}

// List godoc
// @Summary List all accounts
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=[]auth.User}
// @Failure 403 {object} response.ErrorResponse
// @Router /users [get]
func (h *Handler) List(c *gin.Context) {
	users, err := h.repo.ListUsers(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list accounts", "DATABASE_ERROR")
		return
	}
	response.Success(c, users)
}

// GetByID godoc
// @Summary Get an account by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} response.SuccessResponse{data=auth.User}
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	user, err := h.repo.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err, "Account not found")
		return
	}
	response.Success(c, user)
}

// UpdateRequest is the admin's account edit surface. Role changes and
// identity-document verification happen here, not in self-service.
type UpdateRequest struct {
	Name            string `json:"name"`
	Role            string `json:"role"`
	Department      string `json:"department"`
	IDProofVerified *bool  `json:"idProofVerified"`
}

// Update godoc
// @Summary Update an account
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} response.SuccessResponse{data=auth.User}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid account ID", "INVALID_ID")
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_REQUEST")
		return
	}

	updates := bson.M{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Role != "" {
		if !access.ValidRole(access.Role(req.Role)) {
			response.BadRequest(c, "Unknown role", "VALIDATION_FAILED")
			return
		}
		updates["role"] = req.Role
	}
	if req.Department != "" {
		updates["department"] = req.Department
	}
	if req.IDProofVerified != nil {
		updates["idProofVerified"] = *req.IDProofVerified
	}
	if len(updates) == 0 {
		response.BadRequest(c, "Nothing to update", "VALIDATION_FAILED")
		return
	}

	user, err := h.repo.UpdateUser(c.Request.Context(), id, updates)
	if err != nil {
		response.FromError(c, err, "Failed to update account")
		return
	}
	response.Success(c, user)
}

// Delete godoc
// @Summary Delete an account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid account ID", "INVALID_ID")
		return
	}

	if err := h.repo.DeleteUser(c.Request.Context(), id); err != nil {
		response.FromError(c, err, "Account not found")
		return
	}
	response.Success(c, gin.H{"message": "Account removed"})
}
