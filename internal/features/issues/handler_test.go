package issues

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/civicfix/api/internal/features/auth"
	"github.com/civicfix/api/internal/pkg/access"
	apperrors "github.com/civicfix/api/pkg/errors"
)

// purgeRecorder stands in for the comments repository and records which
// issues had their threads purged.
type purgeRecorder struct {
	purged []primitive.ObjectID
}

func (p *purgeRecorder) DeleteByIssue(ctx context.Context, issueID primitive.ObjectID) error {
	p.purged = append(p.purged, issueID)
	return nil
}

func issueDoc(id, reporter primitive.ObjectID, status Status) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: "Pothole on MG Road"},
		{Key: "status", Value: string(status)},
		{Key: "reportedBy", Value: reporter},
	}
}

func testContext(method, path string, body string, user *auth.User, id primitive.ObjectID) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	if body != "" {
		c.Request = httptest.NewRequest(method, path, strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
	} else {
		c.Request = httptest.NewRequest(method, path, nil)
	}
	c.Params = gin.Params{{Key: "id", Value: id.Hex()}}
	c.Set("user", user)
	c.Set("userID", user.ID.Hex())
	return c, w
}

func TestDeletePurgesCommentThread(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("owner deletes issue", func(mt *mtest.T) {
		repo := NewRepository(mt.DB)
		purger := &purgeRecorder{}
		handler := NewHandler(repo, nil, nil, purger)

		id := primitive.NewObjectID()
		reporter := primitive.NewObjectID()
		user := &auth.User{ID: reporter, Role: access.RoleCitizen}

		ns := mt.DB.Name() + ".issues"
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, issueDoc(id, reporter, StatusReported)),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		c, w := testContext(http.MethodDelete, "/api/issues/"+id.Hex(), "", user, id)
		handler.Delete(c)

		require.Equal(mt, http.StatusOK, w.Code)
		require.Equal(mt, []primitive.ObjectID{id}, purger.purged)
	})
}

func TestFeedbackClosesDeletesAndPurges(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("reporter verifies a resolved issue", func(mt *mtest.T) {
		repo := NewRepository(mt.DB)
		purger := &purgeRecorder{}
		handler := NewHandler(repo, nil, nil, purger)

		id := primitive.NewObjectID()
		reporter := primitive.NewObjectID()
		user := &auth.User{ID: reporter, Role: access.RoleCitizen}

		ns := mt.DB.Name() + ".issues"
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, issueDoc(id, reporter, StatusResolved)),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		body := `{"feedback":"Fixed within a week","rating":5}`
		c, w := testContext(http.MethodPut, "/api/issues/"+id.Hex()+"/feedback", body, user, id)
		handler.Feedback(c)

		require.Equal(mt, http.StatusOK, w.Code)
		require.Equal(mt, []primitive.ObjectID{id}, purger.purged)

		// The record is gone: a subsequent fetch comes back not-found.
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		_, err := repo.GetByID(context.Background(), id)
		require.True(mt, errors.Is(err, apperrors.ErrNotFound))
	})

	mt.Run("feedback body is optional", func(mt *mtest.T) {
		repo := NewRepository(mt.DB)
		purger := &purgeRecorder{}
		handler := NewHandler(repo, nil, nil, purger)

		id := primitive.NewObjectID()
		reporter := primitive.NewObjectID()
		user := &auth.User{ID: reporter, Role: access.RoleCitizen}

		ns := mt.DB.Name() + ".issues"
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, issueDoc(id, reporter, StatusResolved)),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		c, w := testContext(http.MethodPut, "/api/issues/"+id.Hex()+"/feedback", "", user, id)
		handler.Feedback(c)

		require.Equal(mt, http.StatusOK, w.Code)
		require.Equal(mt, []primitive.ObjectID{id}, purger.purged)
	})

	mt.Run("unresolved issue is rejected", func(mt *mtest.T) {
		repo := NewRepository(mt.DB)
		purger := &purgeRecorder{}
		handler := NewHandler(repo, nil, nil, purger)

		id := primitive.NewObjectID()
		reporter := primitive.NewObjectID()
		user := &auth.User{ID: reporter, Role: access.RoleCitizen}

		ns := mt.DB.Name() + ".issues"
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, issueDoc(id, reporter, StatusReported)),
		)

		c, w := testContext(http.MethodPut, "/api/issues/"+id.Hex()+"/feedback", "", user, id)
		handler.Feedback(c)

		require.Equal(mt, http.StatusBadRequest, w.Code)
		require.Empty(mt, purger.purged)
	})

	mt.Run("department reporter cannot verify", func(mt *mtest.T) {
		repo := NewRepository(mt.DB)
		purger := &purgeRecorder{}
		handler := NewHandler(repo, nil, nil, purger)

		id := primitive.NewObjectID()
		reporter := primitive.NewObjectID()
		user := &auth.User{ID: reporter, Role: access.RoleDepartment}

		ns := mt.DB.Name() + ".issues"
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, issueDoc(id, reporter, StatusResolved)),
		)

		c, w := testContext(http.MethodPut, "/api/issues/"+id.Hex()+"/feedback", "", user, id)
		handler.Feedback(c)

		require.Equal(mt, http.StatusForbidden, w.Code)
		require.Empty(mt, purger.purged)
	})
}
