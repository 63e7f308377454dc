package issues

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/civicfix/api/internal/pkg/geo"
)

func TestParseListFilterDefaults(t *testing.T) {
	filter, err := ParseListFilter(map[string]string{})
	require.NoError(t, err)
	require.False(t, filter.Geo())
	require.Equal(t, float64(geo.DefaultMaxDistance), filter.Radius)
	require.Equal(t, bson.M{}, filter.FindQuery())
}

func TestParseListFilterRadiusDefault(t *testing.T) {
	filter, err := ParseListFilter(map[string]string{"lng": "77.59", "lat": "12.97"})
	require.NoError(t, err)
	require.True(t, filter.Geo())
	require.Equal(t, float64(10000), filter.Radius)

	query := filter.FindQuery()
	near := query["location"].(bson.M)["$near"].(bson.M)
	require.Equal(t, float64(10000), near["$maxDistance"])
}

func TestParseListFilterExplicitRadius(t *testing.T) {
	filter, err := ParseListFilter(map[string]string{"lng": "77.59", "lat": "12.97", "maxDistance": "2500"})
	require.NoError(t, err)
	require.Equal(t, float64(2500), filter.Radius)
}

func TestParseListFilterRejectsBadEnums(t *testing.T) {
	_, err := ParseListFilter(map[string]string{"category": "potholes"})
	require.Error(t, err)

	_, err = ParseListFilter(map[string]string{"status": "done"})
	require.Error(t, err)
}

func TestParseListFilterRejectsPartialCoordinates(t *testing.T) {
	_, err := ParseListFilter(map[string]string{"lng": "77.59"})
	require.Error(t, err)
}

func TestFilterQueriesCarryEnumFilters(t *testing.T) {
	cityID := primitive.NewObjectID()
	filter, err := ParseListFilter(map[string]string{
		"category": "roads",
		"status":   "reported",
		"city":     cityID.Hex(),
	})
	require.NoError(t, err)

	query := filter.FindQuery()
	require.Equal(t, CategoryRoads, query["category"])
	require.Equal(t, StatusReported, query["status"])
	require.Equal(t, cityID, query["city"])
}

func TestCountQueryUsesGeoWithin(t *testing.T) {
	filter, err := ParseListFilter(map[string]string{"lng": "77.59", "lat": "12.97"})
	require.NoError(t, err)

	query := filter.CountQuery()
	loc := query["location"].(bson.M)
	require.Contains(t, loc, "$geoWithin")
	require.NotContains(t, loc, "$near")
}

func TestSortSpec(t *testing.T) {
	tests := []struct {
		name string
		sort string
		want bson.D
	}{
		{"default newest first", "", bson.D{{Key: "createdAt", Value: -1}}},
		{"explicit descending", "-createdAt", bson.D{{Key: "createdAt", Value: -1}}},
		{"ascending", "createdAt", bson.D{{Key: "createdAt", Value: 1}}},
		{"priority", "-priority", bson.D{{Key: "priority", Value: -1}}},
		{"unknown field falls back", "secretField", bson.D{{Key: "createdAt", Value: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := ListFilter{Sort: tt.sort}
			require.Equal(t, tt.want, filter.SortSpec())
		})
	}
}

func TestSortSpecGeoKeepsNearestOrdering(t *testing.T) {
	lng, lat := 77.59, 12.97
	filter := ListFilter{Lng: &lng, Lat: &lat, Sort: "-createdAt"}
	require.Nil(t, filter.SortSpec())
}
