package issues

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/civicfix/api/internal/pkg/geo"
	apperrors "github.com/civicfix/api/pkg/errors"
)

func validCreateRequest() CreateIssueRequest {
	loc := geo.NewPoint(77.59, 12.97)
	return CreateIssueRequest{
		Title:       "Streetlight out",
		Description: "The light at the corner has been dark for a week",
		Category:    CategoryElectricity,
		Location:    &loc,
		Address:     "5th Cross",
		City:        "Bengaluru",
	}
}

func TestValidateCreate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateIssueRequest)
		wantErr bool
	}{
		{"valid", func(r *CreateIssueRequest) {}, false},
		{"missing title", func(r *CreateIssueRequest) { r.Title = "  " }, true},
		{"title too long", func(r *CreateIssueRequest) { r.Title = strings.Repeat("a", 101) }, true},
		{"missing description", func(r *CreateIssueRequest) { r.Description = "" }, true},
		{"description too long", func(r *CreateIssueRequest) { r.Description = strings.Repeat("a", 1001) }, true},
		{"unknown category", func(r *CreateIssueRequest) { r.Category = "potholes" }, true},
		{"unknown priority", func(r *CreateIssueRequest) { r.Priority = "critical" }, true},
		{"valid priority", func(r *CreateIssueRequest) { r.Priority = PriorityUrgent }, false},
		{"missing location", func(r *CreateIssueRequest) { r.Location = nil }, true},
		{"out of range location", func(r *CreateIssueRequest) {
			loc := geo.NewPoint(200, 12.97)
			r.Location = &loc
		}, true},
		{"missing city", func(r *CreateIssueRequest) { r.City = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)
			err := ValidateCreate(&req)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, apperrors.ErrValidation))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateCreateBoundaryLengths(t *testing.T) {
	req := validCreateRequest()
	req.Title = strings.Repeat("a", 100)
	req.Description = strings.Repeat("b", 1000)
	require.NoError(t, ValidateCreate(&req))
}

func TestValidateUpdate(t *testing.T) {
	tests := []struct {
		name    string
		req     UpdateIssueRequest
		wantErr bool
	}{
		{"empty update", UpdateIssueRequest{}, false},
		{"valid status", UpdateIssueRequest{Status: StatusInProgress}, false},
		{"unknown status", UpdateIssueRequest{Status: "done"}, true},
		{"unknown category", UpdateIssueRequest{Category: "misc"}, true},
		{"title too long", UpdateIssueRequest{Title: strings.Repeat("a", 101)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpdate(&tt.req)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
