package ratelimit

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*Limiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(rdb, "issues", limit, window), mr
}

func TestAllowWithinQuota(t *testing.T) {
	limiter, _ := newTestLimiter(t, 2, time.Hour)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, _, err := limiter.Allow(ctx, "user-1")
		require.NoError(t, err)
		require.True(t, allowed)
	}

	allowed, retryAfter, err := limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, allowed)
	require.Greater(t, retryAfter, time.Duration(0))
}

func TestQuotaIsPerKey(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, time.Hour)
	ctx := context.Background()

	allowed, _, err := limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, _, err = limiter.Allow(ctx, "user-2")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestWindowResets(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	allowed, _, err := limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, _, err = limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	require.False(t, allowed)

	mr.FastForward(2 * time.Minute)

	allowed, _, err = limiter.Allow(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestMiddlewareRejectsOverQuota(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter, _ := newTestLimiter(t, 1, time.Hour)

	r := gin.New()
	r.POST("/issues", Middleware(limiter, func(c *gin.Context) string {
		return c.GetString("userID")
	}), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/issues", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/issues", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	r.ServeHTTP(w, req)
	require.Equal(t, 429, w.Code)
}
