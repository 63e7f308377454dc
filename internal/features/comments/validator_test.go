package comments

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/civicfix/api/pkg/errors"
)

func TestValidateCreate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateCommentRequest
		wantErr bool
	}{
		{"valid", CreateCommentRequest{Issue: "abc", Text: "This needs fixing"}, false},
		{"missing issue", CreateCommentRequest{Text: "hello"}, true},
		{"missing text", CreateCommentRequest{Issue: "abc", Text: "   "}, true},
		{"text too long", CreateCommentRequest{Issue: "abc", Text: strings.Repeat("a", 501)}, true},
		{"text at limit", CreateCommentRequest{Issue: "abc", Text: strings.Repeat("a", 500)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreate(&tt.req)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, apperrors.ErrValidation))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateParentRejectsReplyToReply(t *testing.T) {
	issueID := primitive.NewObjectID()
	grandparent := primitive.NewObjectID()

	reply := &Comment{
		ID:            primitive.NewObjectID(),
		Issue:         issueID,
		ParentComment: &grandparent,
	}
	err := ValidateParent(reply, issueID.Hex())
	require.Error(t, err)
	require.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestValidateParentRejectsCrossIssueParent(t *testing.T) {
	parent := &Comment{
		ID:    primitive.NewObjectID(),
		Issue: primitive.NewObjectID(),
	}
	err := ValidateParent(parent, primitive.NewObjectID().Hex())
	require.Error(t, err)
}

func TestValidateParentAcceptsTopLevel(t *testing.T) {
	issueID := primitive.NewObjectID()
	parent := &Comment{
		ID:    primitive.NewObjectID(),
		Issue: issueID,
	}
	require.NoError(t, ValidateParent(parent, issueID.Hex()))
}
