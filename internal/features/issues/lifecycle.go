package issues

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/civicfix/api/internal/pkg/geo"
)

// New builds a freshly reported issue. The status history starts with the
// reported entry so every issue carries at least one record.
func New(req CreateIssueRequest, location geo.Point, city, reportedBy primitive.ObjectID, now time.Time) *Issue {
	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	images := req.Images
	if images == nil {
		images = []string{}
	}

	return &Issue{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    priority,
		Status:      StatusReported,
		Location:    location,
		Address:     req.Address,
		City:        city,
		ReportedBy:  reportedBy,
		Images:      images,
		Upvotes:     []primitive.ObjectID{},
		Downvotes:   []primitive.ObjectID{},
		StatusHistory: []StatusHistoryEntry{{
			Status:    StatusReported,
			ChangedBy: reportedBy,
			Note:      "Issue reported",
			Timestamp: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ChangeStatus moves the issue to a new status. Setting the current status
// again is a no-op: no history entry, no timestamp changes. Each real
// transition appends exactly one history entry. ResolvedAt and ClosedAt are
// recorded the first time their status is reached and never overwritten.
//
// Returns whether the issue changed.
func (i *Issue) ChangeStatus(status Status, changedBy primitive.ObjectID, note string, now time.Time) bool {
	if status == i.Status {
		return false
	}

	if note == "" {
		note = fmt.Sprintf("Status updated to %s", status)
	}

	i.Status = status
	i.StatusHistory = append(i.StatusHistory, StatusHistoryEntry{
		Status:    status,
		ChangedBy: changedBy,
		Note:      note,
		Timestamp: now,
	})

	if status == StatusResolved && i.ResolvedAt == nil {
		t := now
		i.ResolvedAt = &t
	}
	if status == StatusClosed && i.ClosedAt == nil {
		t := now
		i.ClosedAt = &t
	}

	i.UpdatedAt = now
	return true
}

type VoteKind string

const (
	VoteUp   VoteKind = "upvote"
	VoteDown VoteKind = "downvote"
)

// ApplyVote toggles the caller's vote. Voting the same direction twice
// removes the vote; voting the opposite direction moves it. The two lists
// stay disjoint.
func (i *Issue) ApplyVote(userID primitive.ObjectID, kind VoteKind) VoteResponse {
	switch kind {
	case VoteUp:
		if containsID(i.Upvotes, userID) {
			i.Upvotes = removeID(i.Upvotes, userID)
		} else {
			i.Downvotes = removeID(i.Downvotes, userID)
			i.Upvotes = append(i.Upvotes, userID)
		}
	case VoteDown:
		if containsID(i.Downvotes, userID) {
			i.Downvotes = removeID(i.Downvotes, userID)
		} else {
			i.Upvotes = removeID(i.Upvotes, userID)
			i.Downvotes = append(i.Downvotes, userID)
		}
	}

	return VoteResponse{
		Upvotes:   len(i.Upvotes),
		Downvotes: len(i.Downvotes),
		Upvoted:   containsID(i.Upvotes, userID),
		Downvoted: containsID(i.Downvotes, userID),
	}
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
