package issues

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/civicfix/api/internal/pkg/geo"
)

type Category string

const (
	CategoryRoads           Category = "roads"
	CategoryWater           Category = "water"
	CategoryElectricity     Category = "electricity"
	CategorySanitation      Category = "sanitation"
	CategoryPublicSafety    Category = "public_safety"
	CategoryPublicTransport Category = "public_transport"
	CategoryPollution       Category = "pollution"
	CategoryOthers          Category = "others"
)

// ValidCategory reports whether the string names a known category.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryRoads, CategoryWater, CategoryElectricity, CategorySanitation,
		CategoryPublicSafety, CategoryPublicTransport, CategoryPollution, CategoryOthers:
		return true
	}
	return false
}

type Status string

const (
	StatusReported   Status = "reported"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
	StatusReopened   Status = "reopened"
)

// ValidStatus reports whether the string names a known status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusReported, StatusInProgress, StatusResolved, StatusClosed, StatusReopened:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ValidPriority reports whether the string names a known priority.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// StatusHistoryEntry records a single lifecycle transition. The history is
// append-only; entries are never edited or removed.
type StatusHistoryEntry struct {
	Status    Status             `bson:"status" json:"status"`
	ChangedBy primitive.ObjectID `bson:"changedBy" json:"changedBy"`
	Note      string             `bson:"note" json:"note"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Issue is a geotagged civic complaint.
type Issue struct {
	ID                      primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title                   string               `bson:"title" json:"title"`
	Description             string               `bson:"description" json:"description"`
	Category                Category             `bson:"category" json:"category"`
	Priority                Priority             `bson:"priority" json:"priority"`
	Status                  Status               `bson:"status" json:"status"`
	Location                geo.Point            `bson:"location" json:"location"`
	Address                 string               `bson:"address" json:"address"`
	City                    primitive.ObjectID   `bson:"city" json:"city"`
	ReportedBy              primitive.ObjectID   `bson:"reportedBy" json:"reportedBy"`
	AssignedTo              *primitive.ObjectID  `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Images                  []string             `bson:"images" json:"images"`
	Upvotes                 []primitive.ObjectID `bson:"upvotes" json:"upvotes"`
	Downvotes               []primitive.ObjectID `bson:"downvotes" json:"downvotes"`
	StatusHistory           []StatusHistoryEntry `bson:"statusHistory" json:"statusHistory"`
	EstimatedCompletionTime *time.Time           `bson:"estimatedCompletionTime,omitempty" json:"estimatedCompletionTime,omitempty"`
	ResolvedAt              *time.Time           `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	ClosedAt                *time.Time           `bson:"closedAt,omitempty" json:"closedAt,omitempty"`
	CreatedAt               time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt               time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Request DTOs

type CreateIssueRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	Priority    Priority   `json:"priority"`
	Location    *geo.Point `json:"location"`
	Address     string     `json:"address"`
	City        string     `json:"city"`
	Images      []string   `json:"images"`
}

type UpdateIssueRequest struct {
	Title                   string     `json:"title"`
	Description             string     `json:"description"`
	Category                Category   `json:"category"`
	Priority                Priority   `json:"priority"`
	Address                 string     `json:"address"`
	Images                  []string   `json:"images"`
	Status                  Status     `json:"status"`
	StatusNote              string     `json:"statusNote"`
	AssignedTo              string     `json:"assignedTo"`
	EstimatedCompletionTime *time.Time `json:"estimatedCompletionTime"`
}

type FeedbackRequest struct {
	Feedback string `json:"feedback"`
	Rating   int    `json:"rating"`
}

// Response DTOs

// UserSummary is the reporter/assignee shape embedded in issue responses.
type UserSummary struct {
	ID           primitive.ObjectID `json:"id"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	Role         string             `json:"role"`
	Department   string             `json:"department,omitempty"`
	ProfileImage string             `json:"profileImage,omitempty"`
}

// CitySummary is the city shape embedded in issue responses.
type CitySummary struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	State string             `json:"state"`
}

// IssueResponse is an issue with its references populated.
type IssueResponse struct {
	Issue
	Reporter *UserSummary `json:"reporter,omitempty"`
	Assignee *UserSummary `json:"assignee,omitempty"`
	CityInfo *CitySummary `json:"cityInfo,omitempty"`
}

// ListResponse is the paginated envelope for issue listings.
type ListResponse struct {
	Issues []IssueResponse `json:"issues"`
	Page   int             `json:"page"`
	Pages  int             `json:"pages"`
	Total  int64           `json:"total"`
}

// VoteResponse reports the tallies and the caller's vote state after a
// toggle.
type VoteResponse struct {
	Upvotes   int  `json:"upvotes"`
	Downvotes int  `json:"downvotes"`
	Upvoted   bool `json:"upvoted"`
	Downvoted bool `json:"downvoted"`
}
