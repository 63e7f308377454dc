package issues

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/civicfix/api/internal/pkg/pagination"
	apperrors "github.com/civicfix/api/pkg/errors"
)

// Repository handles database interactions for issues
type Repository struct {
	collection *mongo.Collection
}

// NewRepository initializes the repository and creates necessary indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("issues")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "location", Value: "2dsphere"}},
		},
		{
			Keys: bson.D{{Key: "city", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "reportedBy", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})

	return &Repository{collection: collection}
}

// Create inserts a new issue
func (r *Repository) Create(ctx context.Context, issue *Issue) error {
	result, err := r.collection.InsertOne(ctx, issue)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		issue.ID = oid
	}
	return nil
}

// GetByID returns a single issue
func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Issue, error) {
	var issue Issue
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&issue)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &issue, nil
}

// List returns a filtered, paginated page of issues plus the total count.
func (r *Repository) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]Issue, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter.CountQuery())
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit))
	if sort := filter.SortSpec(); sort != nil {
		opts.SetSort(sort)
	}

	cursor, err := r.collection.Find(ctx, filter.FindQuery(), opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var issues []Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, 0, err
	}
	return issues, total, nil
}

// ListByReporter returns all issues reported by one account, newest first.
func (r *Repository) ListByReporter(ctx context.Context, userID primitive.ObjectID) ([]Issue, error) {
	return r.find(ctx, bson.M{"reportedBy": userID})
}

// ListByCity returns a city's issues, optionally restricted by status.
func (r *Repository) ListByCity(ctx context.Context, cityID primitive.ObjectID, status Status) ([]Issue, error) {
	query := bson.M{"city": cityID}
	if status != "" {
		query["status"] = status
	}
	return r.find(ctx, query)
}

// ListAll returns every issue, optionally restricted by status. Admin view.
func (r *Repository) ListAll(ctx context.Context, status Status) ([]Issue, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}
	return r.find(ctx, query)
}

func (r *Repository) find(ctx context.Context, query bson.M) ([]Issue, error) {
	cursor, err := r.collection.Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var issues []Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// Update applies a partial update and returns the fresh document
func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*Issue, error) {
	updates["updatedAt"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Replace persists the full issue document after an in-memory lifecycle or
// vote mutation.
func (r *Repository) Replace(ctx context.Context, issue *Issue) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": issue.ID}, issue)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes an issue
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
