// Package geo holds the GeoJSON point type and the $near query shape shared
// by the city and issue stores. Distance math lives in MongoDB's 2dsphere
// index; this package only builds the queries.
package geo

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
)

// DefaultMaxDistance is applied when a nearest query omits the radius,
// in meters.
const DefaultMaxDistance = 10000

// Point is a GeoJSON point. Coordinates are [longitude, latitude].
type Point struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewPoint builds a GeoJSON point from a longitude/latitude pair.
func NewPoint(lng, lat float64) Point {
	return Point{
		Type:        "Point",
		Coordinates: []float64{lng, lat},
	}
}

// Valid reports whether the point is a well-formed GeoJSON point with
// coordinates in range.
func (p Point) Valid() bool {
	if p.Type != "Point" || len(p.Coordinates) != 2 {
		return false
	}
	lng, lat := p.Coordinates[0], p.Coordinates[1]
	return lng >= -180 && lng <= 180 && lat >= -90 && lat <= 90
}

// NearQuery builds the $near filter for a 2dsphere-indexed field. Results
// come back sorted ascending by distance, which is the ordering contract the
// API exposes.
func NearQuery(lng, lat, maxDistance float64) bson.M {
	return bson.M{
		"$near": bson.M{
			"$geometry": bson.M{
				"type":        "Point",
				"coordinates": []float64{lng, lat},
			},
			"$maxDistance": maxDistance,
		},
	}
}

// earthRadiusMeters converts a meter radius into the radians $centerSphere
// expects.
const earthRadiusMeters = 6378137.0

// WithinQuery builds a $geoWithin filter covering the same circle as
// NearQuery. CountDocuments rejects $near, so counts over a radius-filtered
// listing use this instead.
func WithinQuery(lng, lat, maxDistance float64) bson.M {
	return bson.M{
		"$geoWithin": bson.M{
			"$centerSphere": []interface{}{
				[]float64{lng, lat},
				maxDistance / earthRadiusMeters,
			},
		},
	}
}

// ParseMaxDistance reads a radius query parameter, falling back to
// DefaultMaxDistance when the value is missing or unusable.
func ParseMaxDistance(raw string) float64 {
	if raw == "" {
		return DefaultMaxDistance
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return DefaultMaxDistance
	}
	return v
}
