package ratelimit

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// KeyFunc extracts the quota key for a request, typically the authenticated
// account ID set by the auth middleware.
type KeyFunc func(c *gin.Context) string

// Middleware enforces the limiter for gin routes. Requests without a
// resolvable key fall back to the client IP. Redis failures let the request
// through rather than blocking the write path.
func Middleware(limiter *Limiter, keyFn KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)
		if key == "" {
			key = c.ClientIP()
		}

		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded. Try again later.",
				"retry_after": retryAfter.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
