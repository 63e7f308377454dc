package issues

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/civicfix/api/internal/pkg/geo"
)

func newTestIssue(t *testing.T) (*Issue, primitive.ObjectID) {
	t.Helper()
	reporter := primitive.NewObjectID()
	issue := New(CreateIssueRequest{
		Title:       "Pothole on MG Road",
		Description: "Large pothole near the bus stop",
		Category:    CategoryRoads,
		Address:     "MG Road",
	}, geo.NewPoint(77.59, 12.97), primitive.NewObjectID(), reporter, time.Now())
	return issue, reporter
}

func TestNewSeedsHistory(t *testing.T) {
	issue, reporter := newTestIssue(t)

	require.Equal(t, StatusReported, issue.Status)
	require.Equal(t, PriorityMedium, issue.Priority)
	require.Len(t, issue.StatusHistory, 1)
	require.Equal(t, StatusReported, issue.StatusHistory[0].Status)
	require.Equal(t, reporter, issue.StatusHistory[0].ChangedBy)
	require.NotNil(t, issue.Upvotes)
	require.NotNil(t, issue.Downvotes)
	require.Nil(t, issue.ResolvedAt)
	require.Nil(t, issue.ClosedAt)
}

func TestChangeStatusAppendsOneEntry(t *testing.T) {
	issue, _ := newTestIssue(t)
	actor := primitive.NewObjectID()

	changed := issue.ChangeStatus(StatusInProgress, actor, "", time.Now())
	require.True(t, changed)
	require.Equal(t, StatusInProgress, issue.Status)
	require.Len(t, issue.StatusHistory, 2)
	require.Equal(t, "Status updated to in_progress", issue.StatusHistory[1].Note)
	require.Equal(t, actor, issue.StatusHistory[1].ChangedBy)
}

func TestChangeStatusSameStatusIsNoOp(t *testing.T) {
	issue, _ := newTestIssue(t)
	before := issue.UpdatedAt

	changed := issue.ChangeStatus(StatusReported, primitive.NewObjectID(), "again", time.Now().Add(time.Hour))
	require.False(t, changed)
	require.Len(t, issue.StatusHistory, 1)
	require.Equal(t, before, issue.UpdatedAt)
}

func TestChangeStatusCustomNote(t *testing.T) {
	issue, _ := newTestIssue(t)

	issue.ChangeStatus(StatusInProgress, primitive.NewObjectID(), "Crew dispatched", time.Now())
	require.Equal(t, "Crew dispatched", issue.StatusHistory[1].Note)
}

func TestResolvedAtSetOnce(t *testing.T) {
	issue, _ := newTestIssue(t)
	actor := primitive.NewObjectID()

	t1 := time.Now()
	issue.ChangeStatus(StatusResolved, actor, "", t1)
	require.NotNil(t, issue.ResolvedAt)
	first := *issue.ResolvedAt
	require.Equal(t, t1, first)

	// Reopen and resolve again: the original resolution time survives.
	issue.ChangeStatus(StatusReopened, actor, "", t1.Add(time.Hour))
	issue.ChangeStatus(StatusResolved, actor, "", t1.Add(2*time.Hour))
	require.Equal(t, first, *issue.ResolvedAt)
}

func TestClosedAtSetOnce(t *testing.T) {
	issue, _ := newTestIssue(t)
	actor := primitive.NewObjectID()

	t1 := time.Now()
	issue.ChangeStatus(StatusClosed, actor, "", t1)
	require.NotNil(t, issue.ClosedAt)
	first := *issue.ClosedAt

	issue.ChangeStatus(StatusReopened, actor, "", t1.Add(time.Hour))
	issue.ChangeStatus(StatusClosed, actor, "", t1.Add(2*time.Hour))
	require.Equal(t, first, *issue.ClosedAt)
}

func TestLifecycleHistoryGrowth(t *testing.T) {
	// N transitions on a fresh issue leave exactly N+1 history entries.
	issue, _ := newTestIssue(t)
	actor := primitive.NewObjectID()
	now := time.Now()

	transitions := []Status{StatusInProgress, StatusResolved, StatusReopened, StatusInProgress, StatusResolved, StatusClosed}
	for i, s := range transitions {
		require.True(t, issue.ChangeStatus(s, actor, "", now.Add(time.Duration(i)*time.Minute)))
	}
	require.Len(t, issue.StatusHistory, len(transitions)+1)
	require.Equal(t, StatusClosed, issue.Status)
}

func TestApplyVoteToggle(t *testing.T) {
	issue, _ := newTestIssue(t)
	voter := primitive.NewObjectID()

	result := issue.ApplyVote(voter, VoteUp)
	require.Equal(t, VoteResponse{Upvotes: 1, Downvotes: 0, Upvoted: true, Downvoted: false}, result)

	// Same direction again removes the vote.
	result = issue.ApplyVote(voter, VoteUp)
	require.Equal(t, VoteResponse{Upvotes: 0, Downvotes: 0, Upvoted: false, Downvoted: false}, result)
}

func TestApplyVoteMutualExclusion(t *testing.T) {
	issue, _ := newTestIssue(t)
	voter := primitive.NewObjectID()

	issue.ApplyVote(voter, VoteUp)
	result := issue.ApplyVote(voter, VoteDown)

	require.Equal(t, VoteResponse{Upvotes: 0, Downvotes: 1, Upvoted: false, Downvoted: true}, result)
	require.Empty(t, issue.Upvotes)
	require.Len(t, issue.Downvotes, 1)
}

func TestApplyVoteIndependentVoters(t *testing.T) {
	issue, _ := newTestIssue(t)
	a, b := primitive.NewObjectID(), primitive.NewObjectID()

	issue.ApplyVote(a, VoteUp)
	result := issue.ApplyVote(b, VoteDown)

	require.Equal(t, 1, result.Upvotes)
	require.Equal(t, 1, result.Downvotes)
	require.False(t, result.Upvoted)
	require.True(t, result.Downvoted)
}
