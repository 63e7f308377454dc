package comments

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/civicfix/api/pkg/errors"
)

// Repository handles database interactions for comments
type Repository struct {
	collection *mongo.Collection
}

// NewRepository initializes the repository and creates necessary indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("comments")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "issue", Value: 1}, {Key: "createdAt", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "parentComment", Value: 1}},
		},
	})

	return &Repository{collection: collection}
}

// Create inserts a new comment
func (r *Repository) Create(ctx context.Context, comment *Comment) error {
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	if comment.Images == nil {
		comment.Images = []string{}
	}
	if comment.Likes == nil {
		comment.Likes = []primitive.ObjectID{}
	}

	result, err := r.collection.InsertOne(ctx, comment)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		comment.ID = oid
	}
	return nil
}

// GetByID returns a single comment
func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Comment, error) {
	var comment Comment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// ListByIssue returns every comment on an issue, oldest first. The handler
// groups replies under their parents.
func (r *Repository) ListByIssue(ctx context.Context, issueID primitive.ObjectID) ([]Comment, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"issue": issueID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// Update applies an edit and returns the fresh document
func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*Comment, error) {
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

// ToggleLike flips the caller's like on a comment and returns the new state.
func (r *Repository) ToggleLike(ctx context.Context, id, userID primitive.ObjectID) (*LikeResponse, error) {
	comment, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	liked := false
	for _, v := range comment.Likes {
		if v == userID {
			liked = true
			break
		}
	}

	var update bson.M
	if liked {
		update = bson.M{"$pull": bson.M{"likes": userID}}
	} else {
		update = bson.M{"$addToSet": bson.M{"likes": userID}}
	}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return nil, err
	}

	count := len(comment.Likes)
	if liked {
		count--
	} else {
		count++
	}
	return &LikeResponse{Likes: count, Liked: !liked}, nil
}

// Delete removes a comment and, when it is top-level, all of its replies.
func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}

	_, err = r.collection.DeleteMany(ctx, bson.M{"parentComment": id})
	return err
}

// DeleteByIssue removes every comment on an issue. Used when the issue
// itself is removed.
func (r *Repository) DeleteByIssue(ctx context.Context, issueID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"issue": issueID})
	return err
}
