package comments

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a discussion entry on an issue. Nesting is a single level deep:
// a reply's parent is always a top-level comment.
type Comment struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Issue         primitive.ObjectID   `bson:"issue" json:"issue"`
	User          primitive.ObjectID   `bson:"user" json:"user"`
	Text          string               `bson:"text" json:"text"`
	ParentComment *primitive.ObjectID  `bson:"parentComment,omitempty" json:"parentComment,omitempty"`
	Images        []string             `bson:"images" json:"images"`
	Likes         []primitive.ObjectID `bson:"likes" json:"likes"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Request DTOs

type CreateCommentRequest struct {
	Issue         string   `json:"issue"`
	Text          string   `json:"text"`
	ParentComment string   `json:"parentComment"`
	Images        []string `json:"images"`
}

type UpdateCommentRequest struct {
	Text   string   `json:"text"`
	Images []string `json:"images"`
}

// Response DTOs

// AuthorSummary is the comment author shape embedded in responses.
type AuthorSummary struct {
	ID           primitive.ObjectID `json:"id"`
	Name         string             `json:"name"`
	Role         string             `json:"role"`
	ProfileImage string             `json:"profileImage,omitempty"`
}

// CommentResponse is a comment with its author attached. Top-level comments
// carry their replies, ordered oldest first.
type CommentResponse struct {
	Comment
	Author  *AuthorSummary    `json:"author,omitempty"`
	Replies []CommentResponse `json:"replies,omitempty"`
}

// LikeResponse reports the tally and the caller's like state after a toggle.
type LikeResponse struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}
