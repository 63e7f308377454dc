package cities

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/civicfix/api/internal/pkg/geo"
	"github.com/civicfix/api/internal/pkg/response"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List godoc
// @Summary List all cities
// @Tags cities
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=[]City}
// @Router /cities [get]
func (h *Handler) List(c *gin.Context) {
	cities, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list cities", "DATABASE_ERROR")
		return
	}
	response.Success(c, cities)
}

// Near godoc
// @Summary Find cities near a point
// @Description Returns cities within maxDistance meters, nearest first.
// @Description maxDistance defaults to 10000 when omitted.
// @Tags cities
// @Produce json
// @Param lng query number true "Longitude"
// @Param lat query number true "Latitude"
// @Param maxDistance query number false "Radius in meters"
// @Success 200 {object} response.SuccessResponse{data=[]City}
// @Failure 400 {object} response.ErrorResponse
// @Router /cities/near [get]
func (h *Handler) Near(c *gin.Context) {
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	if lngErr != nil || latErr != nil {
		response.BadRequest(c, "Please provide longitude and latitude coordinates", "VALIDATION_FAILED")
		return
	}

	maxDistance := geo.ParseMaxDistance(c.Query("maxDistance"))

	cities, err := h.repo.Near(c.Request.Context(), lng, lat, maxDistance)
	if err != nil {
		response.InternalServerError(c, "Failed to query nearby cities", "DATABASE_ERROR")
		return
	}
	response.Success(c, cities)
}

// GetByID godoc
// @Summary Get a city by ID
// @Tags cities
// @Produce json
// @Param id path string true "City ID"
// @Success 200 {object} response.SuccessResponse{data=City}
// @Failure 404 {object} response.ErrorResponse
// @Router /cities/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid city ID", "INVALID_ID")
		return
	}

	city, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, "City not found")
		return
	}
	response.Success(c, city)
}

// Create godoc
// @Summary Create a city
// @Tags cities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.SuccessResponse{data=City}
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /cities [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_REQUEST")
		return
	}
	if !req.Coordinates.Valid() {
		response.BadRequest(c, "City coordinates are required", "VALIDATION_FAILED")
		return
	}

	city := &City{
		Name:        req.Name,
		State:       req.State,
		Country:     req.Country,
		Coordinates: req.Coordinates,
		Population:  req.Population,
	}
	for _, d := range req.Departments {
		city.Departments = append(city.Departments, Department{
			ID:           primitive.NewObjectID(),
			Name:         d.Name,
			Description:  d.Description,
			ContactEmail: d.ContactEmail,
			ContactPhone: d.ContactPhone,
		})
	}

	if err := h.repo.Create(c.Request.Context(), city); err != nil {
		response.FromError(c, err, "City already exists")
		return
	}
	response.Created(c, city)
}

// Update godoc
// @Summary Update a city
// @Tags cities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "City ID"
// @Success 200 {object} response.SuccessResponse{data=City}
// @Failure 404 {object} response.ErrorResponse
// @Router /cities/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid city ID", "INVALID_ID")
		return
	}

	var req UpdateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request format", "INVALID_REQUEST")
		return
	}

	updates := bson.M{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.State != "" {
		updates["state"] = req.State
	}
	if req.Country != "" {
		updates["country"] = req.Country
	}
	if req.Population > 0 {
		updates["population"] = req.Population
	}
	if req.Coordinates != nil {
		if !req.Coordinates.Valid() {
			response.BadRequest(c, "Invalid coordinates", "VALIDATION_FAILED")
			return
		}
		updates["coordinates"] = *req.Coordinates
	}

	city, err := h.repo.Update(c.Request.Context(), id, updates)
	if err != nil {
		response.FromError(c, err, "Failed to update city")
		return
	}
	response.Success(c, city)
}

// Delete godoc
// @Summary Delete a city
// @Tags cities
// @Produce json
// @Security BearerAuth
// @Param id path string true "City ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /cities/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid city ID", "INVALID_ID")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err, "City not found")
		return
	}
	response.Success(c, gin.H{"message": "City removed"})
}

// AddDepartment godoc
// @Summary Add a department to a city
// @Tags cities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "City ID"
// @Success 201 {object} response.SuccessResponse{data=City}
// @Failure 404 {object} response.ErrorResponse
// @Router /cities/{id}/departments [post]
func (h *Handler) AddDepartment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid city ID", "INVALID_ID")
		return
	}

	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Department name is required", "INVALID_REQUEST")
		return
	}

	city, err := h.repo.AddDepartment(c.Request.Context(), id, Department{
		Name:         req.Name,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		response.FromError(c, err, "City not found")
		return
	}
	response.Created(c, city)
}

// RemoveDepartment godoc
// @Summary Remove a department from a city
// @Tags cities
// @Produce json
// @Security BearerAuth
// @Param id path string true "City ID"
// @Param departmentId path string true "Department ID"
// @Success 200 {object} response.SuccessResponse{data=City}
// @Failure 404 {object} response.ErrorResponse
// @Router /cities/{id}/departments/{departmentId} [delete]
func (h *Handler) RemoveDepartment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid city ID", "INVALID_ID")
		return
	}
	deptID, err := primitive.ObjectIDFromHex(c.Param("departmentId"))
	if err != nil {
		response.BadRequest(c, "Invalid department ID", "INVALID_ID")
		return
	}

	city, err := h.repo.RemoveDepartment(c.Request.Context(), id, deptID)
	if err != nil {
		response.FromError(c, err, "City not found")
		return
	}
	response.Success(c, city)
}
