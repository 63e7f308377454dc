package cities

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/civicfix/api/internal/pkg/geo"
	apperrors "github.com/civicfix/api/pkg/errors"
)

// Repository handles database interactions for the city registry
type Repository struct {
	collection *mongo.Collection
}

// NewRepository initializes the repository, including the 2dsphere index the
// nearest-city queries rely on
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("cities")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "coordinates", Value: "2dsphere"}},
		},
	})

	return &Repository{collection: collection}
}

// Create inserts a new city
func (r *Repository) Create(ctx context.Context, city *City) error {
	city.CreatedAt = time.Now()
	city.UpdatedAt = time.Now()
	if city.Country == "" {
		city.Country = "India"
	}
	if city.CityImage == "" {
		city.CityImage = defaultCityImage
	}
	if !city.Coordinates.Valid() {
		city.Coordinates = DefaultCoordinates
	}
	if city.Departments == nil {
		city.Departments = []Department{}
	}

	result, err := r.collection.InsertOne(ctx, city)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrDuplicate
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		city.ID = oid
	}
	return nil
}

// GetByID returns a city by ID
func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*City, error) {
	var city City
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&city)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &city, nil
}

// GetByIDs batch-fetches cities keyed by ID
func (r *Repository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*City, error) {
	result := make(map[primitive.ObjectID]*City)
	if len(ids) == 0 {
		return result, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var city City
		if err := cursor.Decode(&city); err != nil {
			return nil, err
		}
		result[city.ID] = &city
	}
	return result, cursor.Err()
}

// FindByName matches a city by case-insensitive name equality
func (r *Repository) FindByName(ctx context.Context, name string) (*City, error) {
	pattern := "^" + regexp.QuoteMeta(strings.TrimSpace(name)) + "$"
	filter := bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}}

	var city City
	err := r.collection.FindOne(ctx, filter).Decode(&city)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &city, nil
}

// ResolveOrCreate returns the city matching the given name, creating it when
// absent. Accepts "Name" or "Name, State"; an auto-created city gets default
// coordinates. A failure here surfaces to the caller, a city reference is
// never replaced by a raw string.
func (r *Repository) ResolveOrCreate(ctx context.Context, raw string) (*City, error) {
	name := strings.TrimSpace(raw)
	state := "Unknown"
	if idx := strings.Index(name, ","); idx >= 0 {
		state = strings.TrimSpace(name[idx+1:])
		name = strings.TrimSpace(name[:idx])
		if state == "" {
			state = "Unknown"
		}
	}
	if name == "" {
		return nil, apperrors.ErrValidation
	}

	city, err := r.FindByName(ctx, name)
	if err == nil {
		return city, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	city = &City{
		Name:        name,
		State:       state,
		Coordinates: DefaultCoordinates,
	}
	if err := r.Create(ctx, city); err != nil {
		// A concurrent registration may have created it first.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return r.FindByName(ctx, name)
		}
		return nil, err
	}
	return city, nil
}

// List returns all cities
func (r *Repository) List(ctx context.Context) ([]City, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cities []City
	if err := cursor.All(ctx, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// Near returns cities within maxDistance meters of the point, nearest first.
// The $near operator sorts ascending by distance.
func (r *Repository) Near(ctx context.Context, lng, lat, maxDistance float64) ([]City, error) {
	filter := bson.M{"coordinates": geo.NearQuery(lng, lat, maxDistance)}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cities []City
	if err := cursor.All(ctx, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// Update applies a partial update and returns the fresh document
func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*City, error) {
	updates["updatedAt"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.ErrDuplicate
		}
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, apperrors.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete removes a city
func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AddDepartment appends a department descriptor and returns the city
func (r *Repository) AddDepartment(ctx context.Context, cityID primitive.ObjectID, dept Department) (*City, error) {
	dept.ID = primitive.NewObjectID()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": cityID},
		bson.M{
			"$push": bson.M{"departments": dept},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, apperrors.ErrNotFound
	}

	return r.GetByID(ctx, cityID)
}

// RemoveDepartment deletes a department descriptor by its ID
func (r *Repository) RemoveDepartment(ctx context.Context, cityID, deptID primitive.ObjectID) (*City, error) {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": cityID},
		bson.M{
			"$pull": bson.M{"departments": bson.M{"_id": deptID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, apperrors.ErrNotFound
	}

	return r.GetByID(ctx, cityID)
}
