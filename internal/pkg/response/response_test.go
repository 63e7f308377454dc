package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	apperrors "github.com/civicfix/api/pkg/errors"
)

func TestSuccessAndErrorResponses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, map[string]string{"foo": "bar"})
	require.Equal(t, 200, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "success", body["status"])
	require.Contains(t, body, "data")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Error(c, 400, "bad input", "BAD_INPUT")
	require.Equal(t, 400, w.Code)
	var errBody map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	require.Equal(t, "bad input", errBody["error"])
	require.Equal(t, "BAD_INPUT", errBody["code"])
}

func TestFromErrorMapsTaxonomy(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		code int
	}{
		{apperrors.ErrNotFound, 404},
		{apperrors.ErrUnauthorized, 401},
		{apperrors.ErrForbidden, 403},
		{apperrors.ErrValidation, 400},
		{apperrors.ErrDuplicate, 409},
		{apperrors.ErrUpstream, 503},
		{apperrors.ErrInternal, 500},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		FromError(c, tc.err, tc.err.Error())
		require.Equal(t, tc.code, w.Code, "error %v", tc.err)
	}
}
