package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNewPoint(t *testing.T) {
	p := NewPoint(72.8777, 19.076)
	require.Equal(t, "Point", p.Type)
	require.Equal(t, []float64{72.8777, 19.076}, p.Coordinates)
	require.True(t, p.Valid())
}

func TestPointValid(t *testing.T) {
	require.False(t, Point{}.Valid())
	require.False(t, Point{Type: "Point", Coordinates: []float64{200, 0}}.Valid())
	require.False(t, Point{Type: "Point", Coordinates: []float64{0, 95}}.Valid())
	require.False(t, Point{Type: "Polygon", Coordinates: []float64{0, 0}}.Valid())
}

func TestNearQueryShape(t *testing.T) {
	q := NearQuery(77.1, 28.6, 5000)

	near, ok := q["$near"].(bson.M)
	require.True(t, ok)
	require.Equal(t, float64(5000), near["$maxDistance"])

	geometry, ok := near["$geometry"].(bson.M)
	require.True(t, ok)
	require.Equal(t, "Point", geometry["type"])
	require.Equal(t, []float64{77.1, 28.6}, geometry["coordinates"])
}

func TestParseMaxDistanceDefaults(t *testing.T) {
	require.Equal(t, float64(DefaultMaxDistance), ParseMaxDistance(""))
	require.Equal(t, float64(DefaultMaxDistance), ParseMaxDistance("not-a-number"))
	require.Equal(t, float64(DefaultMaxDistance), ParseMaxDistance("-5"))
	require.Equal(t, float64(2500), ParseMaxDistance("2500"))
}
