package auth

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/civicfix/api/internal/config"
	"github.com/civicfix/api/internal/features/cities"
	"github.com/civicfix/api/internal/pkg/access"
	"github.com/civicfix/api/internal/pkg/cloudinary"
	"github.com/civicfix/api/internal/pkg/response"
	"github.com/civicfix/api/internal/pkg/token"
)

type Handler struct {
	repo       *Repository
	citiesRepo *cities.Repository
	cloudinary *cloudinary.Service
	cfg        *config.Config
}

func NewHandler(repo *Repository, citiesRepo *cities.Repository, cld *cloudinary.Service, cfg *config.Config) *Handler {
	return &Handler{
		repo:       repo,
		citiesRepo: citiesRepo,
		cloudinary: cld,
		cfg:        cfg,
	}
}

func (h *Handler) issueToken(user *User) (string, error) {
	expiry := time.Duration(h.cfg.JWTExpireHours) * time.Hour
	return token.Generate(user.ID.Hex(), user.Email, string(user.Role), h.cfg.JWTSecret, expiry)
}

// Register godoc
// @Summary Register a new account
// @Description Create a citizen, department or admin account. Department
// @Description registrations may attach an identity document as multipart field "idProof".
// @Tags users
// @Accept json,mpfd
// @Produce json
// @Success 201 {object} response.SuccessResponse{data=AuthResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /users [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_REQUEST")
		return
	}

	if err := ValidateRegister(&req); err != nil {
		response.BadRequest(c, err.Error(), "VALIDATION_FAILED")
		return
	}

	ctx := c.Request.Context()

	// Department accounts carry an identity document reference, verified out
	// of band by an administrator.
	idProof := ""
	if req.Role == string(access.RoleDepartment) {
		idProof = PendingVerification
	}
	if file, header, err := c.Request.FormFile("idProof"); err == nil {
		defer file.Close()
		if err := cloudinary.ValidateDocumentFile(header); err != nil {
			response.BadRequest(c, err.Error(), "INVALID_FILE")
			return
		}
		if h.cloudinary == nil {
			response.ServiceUnavailable(c, "Document storage is not configured", "UPSTREAM_UNAVAILABLE")
			return
		}
		uploaded, err := h.cloudinary.UploadDocument(ctx, file, header.Filename)
		if err != nil {
			response.ServiceUnavailable(c, "Failed to store identity document", "UPSTREAM_UNAVAILABLE")
			return
		}
		idProof = uploaded.URL
	}

	var cityID *primitive.ObjectID
	if req.City != "" {
		city, err := h.citiesRepo.ResolveOrCreate(ctx, req.City)
		if err != nil {
			response.FromError(c, err, "Failed to resolve city")
			return
		}
		cityID = &city.ID
	}

	user := &User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        access.Role(req.Role),
		PhoneNumber: req.PhoneNumber,
		City:        cityID,
		Department:  req.Department,
		IDProof:     idProof,
	}
	if err := user.HashPassword(); err != nil {
		response.InternalServerError(c, "Failed to create account", "INTERNAL_ERROR")
		return
	}

	if err := h.repo.CreateUser(ctx, user); err != nil {
		response.FromError(c, err, "An account with this email already exists")
		return
	}

	signed, err := h.issueToken(user)
	if err != nil {
		response.InternalServerError(c, "Failed to issue token", "INTERNAL_ERROR")
		return
	}

	response.Created(c, AuthResponse{User: user, Token: signed})
}

// Login godoc
// @Summary Log in with email and password
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=AuthResponse}
// @Failure 401 {object} response.ErrorResponse
// @Router /users/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email and password are required", "INVALID_REQUEST")
		return
	}

	user, err := h.repo.GetUserByEmail(c.Request.Context(), normalizeEmail(req.Email))
	if err != nil || !user.ComparePassword(req.Password) {
		response.Unauthorized(c, "Invalid email or password", "INVALID_CREDENTIALS")
		return
	}

	signed, err := h.issueToken(user)
	if err != nil {
		response.InternalServerError(c, "Failed to issue token", "INTERNAL_ERROR")
		return
	}

	response.Success(c, AuthResponse{User: user, Token: signed})
}

// GetProfile godoc
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=User}
// @Router /users/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}
	response.Success(c, user)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=AuthResponse}
// @Failure 400 {object} response.ErrorResponse
// @Router /users/profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_REQUEST")
		return
	}
	if err := ValidateProfileUpdate(&req); err != nil {
		response.BadRequest(c, err.Error(), "VALIDATION_FAILED")
		return
	}

	ctx := c.Request.Context()
	updates := bson.M{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.PhoneNumber != "" {
		updates["phoneNumber"] = req.PhoneNumber
	}
	if req.City != "" {
		city, err := h.citiesRepo.ResolveOrCreate(ctx, req.City)
		if err != nil {
			response.FromError(c, err, "Failed to resolve city")
			return
		}
		updates["city"] = city.ID
	}
	if req.Password != "" {
		temp := User{Password: req.Password}
		if err := temp.HashPassword(); err != nil {
			response.InternalServerError(c, "Failed to update password", "INTERNAL_ERROR")
			return
		}
		updates["password"] = temp.Password
	}

	updated, err := h.repo.UpdateUser(ctx, user.ID, updates)
	if err != nil {
		response.FromError(c, err, "Failed to update profile")
		return
	}

	signed, err := h.issueToken(updated)
	if err != nil {
		response.InternalServerError(c, "Failed to issue token", "INTERNAL_ERROR")
		return
	}

	response.Success(c, AuthResponse{User: updated, Token: signed})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
