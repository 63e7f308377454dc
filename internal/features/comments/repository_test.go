package comments

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	apperrors "github.com/civicfix/api/pkg/errors"
)

func TestDeleteCascadesToReplies(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("top-level delete removes replies", func(mt *mtest.T) {
		repo := NewRepository(mt.DB)
		parentID := primitive.NewObjectID()

		mt.ClearEvents()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 2}),
		)

		require.NoError(mt, repo.Delete(context.Background(), parentID))

		// First delete targets the comment itself.
		first := mt.GetStartedEvent()
		require.NotNil(mt, first)
		require.Equal(mt, "delete", first.CommandName)

		// Second delete sweeps everything referencing it as parent, so no
		// reply can survive its top-level comment.
		second := mt.GetStartedEvent()
		require.NotNil(mt, second)
		require.Equal(mt, "delete", second.CommandName)

		deletes, err := second.Command.Lookup("deletes").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, deletes, 1)

		q := deletes[0].Document().Lookup("q").Document()
		parentRef, err := q.LookupErr("parentComment")
		require.NoError(mt, err)
		require.Equal(mt, parentID, parentRef.ObjectID())

		// The sweep is unbounded, not a limit-1 delete.
		limit, err := deletes[0].Document().LookupErr("limit")
		require.NoError(mt, err)
		require.Equal(mt, int32(0), limit.Int32())
	})

	mt.Run("missing comment", func(mt *mtest.T) {
		repo := NewRepository(mt.DB)

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Delete(context.Background(), primitive.NewObjectID())
		require.True(mt, errors.Is(err, apperrors.ErrNotFound))
	})
}

func TestDeleteByIssueSweepsWholeThread(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("filters on the issue reference", func(mt *mtest.T) {
		repo := NewRepository(mt.DB)
		issueID := primitive.NewObjectID()

		mt.ClearEvents()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}))

		require.NoError(mt, repo.DeleteByIssue(context.Background(), issueID))

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		require.Equal(mt, "delete", evt.CommandName)

		deletes, err := evt.Command.Lookup("deletes").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, deletes, 1)

		q := deletes[0].Document().Lookup("q").Document()
		issueRef, err := q.LookupErr("issue")
		require.NoError(mt, err)
		require.Equal(mt, issueID, issueRef.ObjectID())
	})
}
