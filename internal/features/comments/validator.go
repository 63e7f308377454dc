package comments

import (
	"strings"

	apperrors "github.com/civicfix/api/pkg/errors"
)

const maxTextLength = 500

// ValidationError describes a rejected field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap lets callers match validation failures with errors.Is.
func (e ValidationError) Unwrap() error {
	return apperrors.ErrValidation
}

// ValidateCreate normalizes and checks a creation request in place.
func ValidateCreate(req *CreateCommentRequest) error {
	req.Text = strings.TrimSpace(req.Text)

	if req.Issue == "" {
		return ValidationError{Field: "issue", Message: "issue is required"}
	}
	if req.Text == "" {
		return ValidationError{Field: "text", Message: "text is required"}
	}
	if len(req.Text) > maxTextLength {
		return ValidationError{Field: "text", Message: "text must be at most 500 characters"}
	}
	return nil
}

// ValidateParent enforces single-level nesting: the parent of a reply must
// itself be a top-level comment, and must belong to the same issue.
func ValidateParent(parent *Comment, issueID string) error {
	if parent.ParentComment != nil {
		return ValidationError{Field: "parentComment", Message: "replies to replies are not allowed"}
	}
	if parent.Issue.Hex() != issueID {
		return ValidationError{Field: "parentComment", Message: "parent comment belongs to a different issue"}
	}
	return nil
}

// ValidateUpdate checks an edit.
func ValidateUpdate(req *UpdateCommentRequest) error {
	req.Text = strings.TrimSpace(req.Text)

	if req.Text == "" && req.Images == nil {
		return ValidationError{Field: "text", Message: "nothing to update"}
	}
	if len(req.Text) > maxTextLength {
		return ValidationError{Field: "text", Message: "text must be at most 500 characters"}
	}
	return nil
}
