package issues

import (
	"strings"

	apperrors "github.com/civicfix/api/pkg/errors"
)

const (
	maxTitleLength       = 100
	maxDescriptionLength = 1000
)

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
func ValidateCreate(req *CreateIssueRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Address = strings.TrimSpace(req.Address)
	req.City = strings.TrimSpace(req.City)

	if req.Title == "" {
		return ValidationError{Field: "title", Message: "title is required"}
	}
	if len(req.Title) > maxTitleLength {
		return ValidationError{Field: "title", Message: "title must be at most 100 characters"}
	}
	if req.Description == "" {
		return ValidationError{Field: "description", Message: "description is required"}
	}
	if len(req.Description) > maxDescriptionLength {
		return ValidationError{Field: "description", Message: "description must be at most 1000 characters"}
	}
	if !ValidCategory(req.Category) {
		return ValidationError{Field: "category", Message: "unknown category"}
	}
	if req.Priority != "" && !ValidPriority(req.Priority) {
		return ValidationError{Field: "priority", Message: "unknown priority"}
	}
	if req.Location == nil || !req.Location.Valid() {
		return ValidationError{Field: "location", Message: "a valid GeoJSON point location is required"}
	}
	if req.City == "" {
		return ValidationError{Field: "city", Message: "city is required"}
	}
	return nil
}

// ValidateUpdate checks the supplied fields of a partial update.
func ValidateUpdate(req *UpdateIssueRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)

	if req.Title != "" && len(req.Title) > maxTitleLength {
		return ValidationError{Field: "title", Message: "title must be at most 100 characters"}
	}
	if req.Description != "" && len(req.Description) > maxDescriptionLength {
		return ValidationError{Field: "description", Message: "description must be at most 1000 characters"}
	}
	if req.Category != "" && !ValidCategory(req.Category) {
		return ValidationError{Field: "category", Message: "unknown category"}
	}
	if req.Priority != "" && !ValidPriority(req.Priority) {
		return ValidationError{Field: "priority", Message: "unknown priority"}
	}
	if req.Status != "" && !ValidStatus(req.Status) {
		return ValidationError{Field: "status", Message: "unknown status"}
	}
	return nil
}
