package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/civicfix/api/internal/config"
	"github.com/civicfix/api/internal/pkg/access"
	"github.com/civicfix/api/internal/pkg/response"
	"github.com/civicfix/api/internal/pkg/token"
)

// RequireAuth resolves the bearer token into a full account record and stores
// it in the request context. Every mutating route sits behind this.
func RequireAuth(repo *Repository, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header required", "AUTH_REQUIRED")
			c.Abort()
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "Invalid authorization format", "INVALID_AUTH_FORMAT")
			c.Abort()
			return
		}

		claims, err := token.Validate(parts[1], cfg.JWTSecret)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token", "INVALID_TOKEN")
			c.Abort()
			return
		}

		user, err := repo.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Unauthorized(c, "User not found", "USER_NOT_FOUND")
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("userID", user.ID.Hex())
		c.Next()
	}
}

// RequireRoles gates a route to specific roles. Must run after RequireAuth.
func RequireRoles(roles ...access.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
			c.Abort()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "Insufficient permissions", "FORBIDDEN")
		c.Abort()
	}
}

// CurrentUser pulls the authenticated account out of the request context.
func CurrentUser(c *gin.Context) (*User, bool) {
	val, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := val.(*User)
	return user, ok
}
