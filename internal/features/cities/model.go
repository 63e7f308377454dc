package cities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/civicfix/api/internal/pkg/geo"
)

const defaultCityImage = "https://res.cloudinary.com/civicfix/image/upload/v1/defaults/city.jpg"

// DefaultCoordinates is used when a city is auto-created without a known
// location; the registry invariant is that every city carries a point.
var DefaultCoordinates = geo.NewPoint(77.0, 20.0)

// Department is a municipal department descriptor embedded in a city.
type Department struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	ContactEmail string             `bson:"contactEmail,omitempty" json:"contactEmail,omitempty"`
	ContactPhone string             `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
}

// City is a named locality with a geographic point and its departments.
type City struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	State       string             `bson:"state" json:"state"`
	Country     string             `bson:"country" json:"country"`
	Coordinates geo.Point          `bson:"coordinates" json:"coordinates"`
	CityImage   string             `bson:"cityImage" json:"cityImage"`
	Population  int64              `bson:"population,omitempty" json:"population,omitempty"`
	Departments []Department       `bson:"departments" json:"departments"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Request DTOs

type CreateCityRequest struct {
	Name        string              `json:"name" binding:"required"`
	State       string              `json:"state" binding:"required"`
	Country     string              `json:"country"`
	Coordinates geo.Point           `json:"coordinates" binding:"required"`
	Population  int64               `json:"population"`
	Departments []DepartmentRequest `json:"departments"`
}

type UpdateCityRequest struct {
	Name        string     `json:"name"`
	State       string     `json:"state"`
	Country     string     `json:"country"`
	Coordinates *geo.Point `json:"coordinates"`
	Population  int64      `json:"population"`
}

type DepartmentRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
}
