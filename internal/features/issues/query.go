package issues

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/civicfix/api/internal/pkg/geo"
	apperrors "github.com/civicfix/api/pkg/errors"
)

// DefaultSort orders listings newest first.
const DefaultSort = "-createdAt"

// sortFields whitelists the fields a listing may be ordered by. Anything
// else falls back to DefaultSort.
var sortFields = map[string]bool{
	"createdAt": true,
	"updatedAt": true,
	"priority":  true,
	"status":    true,
	"title":     true,
}

// ListFilter is the parsed query surface of GET /issues.
type ListFilter struct {
	Category Category
	Status   Status
	City     string
	Lng      *float64
	Lat      *float64
	Radius   float64
	Sort     string
}

// ParseListFilter reads the listing filters from raw query values.
// Unknown enum values are rejected; a geo filter needs both coordinates.
func ParseListFilter(values map[string]string) (ListFilter, error) {
	f := ListFilter{
		Category: Category(values["category"]),
		Status:   Status(values["status"]),
		City:     values["city"],
		Radius:   geo.ParseMaxDistance(values["maxDistance"]),
		Sort:     values["sort"],
	}

	if f.Category != "" && !ValidCategory(f.Category) {
		return f, apperrors.ErrValidation
	}
	if f.Status != "" && !ValidStatus(f.Status) {
		return f, apperrors.ErrValidation
	}

	lngRaw, latRaw := values["lng"], values["lat"]
	if lngRaw != "" || latRaw != "" {
		lng, lngErr := strconv.ParseFloat(lngRaw, 64)
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		if lngErr != nil || latErr != nil {
			return f, apperrors.ErrValidation
		}
		f.Lng, f.Lat = &lng, &lat
	}

	return f, nil
}

// Geo reports whether the filter restricts results to a radius.
func (f ListFilter) Geo() bool {
	return f.Lng != nil && f.Lat != nil
}

// FindQuery builds the filter for the listing cursor. The geo restriction
// uses $near, so radius-filtered results come back nearest first.
func (f ListFilter) FindQuery() bson.M {
	query := f.baseQuery()
	if f.Geo() {
		query["location"] = geo.NearQuery(*f.Lng, *f.Lat, f.Radius)
	}
	return query
}

// CountQuery builds the filter for the total count. CountDocuments rejects
// $near, so the same circle is expressed with $geoWithin.
func (f ListFilter) CountQuery() bson.M {
	query := f.baseQuery()
	if f.Geo() {
		query["location"] = geo.WithinQuery(*f.Lng, *f.Lat, f.Radius)
	}
	return query
}

func (f ListFilter) baseQuery() bson.M {
	query := bson.M{}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if f.City != "" {
		if oid, err := primitive.ObjectIDFromHex(f.City); err == nil {
			query["city"] = oid
		} else {
			// An unparseable city ID matches nothing rather than everything.
			query["city"] = primitive.NilObjectID
		}
	}
	return query
}

// SortSpec resolves the sort parameter against the whitelist. When the
// listing is radius-filtered the $near ordering wins and no explicit sort is
// applied.
func (f ListFilter) SortSpec() bson.D {
	if f.Geo() {
		return nil
	}

	sort := f.Sort
	if sort == "" {
		sort = DefaultSort
	}

	dir := 1
	field := sort
	if field[0] == '-' {
		dir = -1
		field = field[1:]
	}
	if !sortFields[field] {
		field = "createdAt"
		dir = -1
	}
	return bson.D{{Key: field, Value: dir}}
}
