package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/civicfix/api/internal/config"
	"github.com/civicfix/api/internal/pkg/access"
	"github.com/civicfix/api/internal/pkg/token"
)

// Requests that fail before the account lookup never touch the repository,
// so a nil repository is fine for these cases.
func protectedRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(nil, cfg), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	return r
}

func TestRequireAuthMissingHeader(t *testing.T) {
	r := protectedRouter(&config.Config{JWTSecret: "secret"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/protected", nil))
	require.Equal(t, 401, w.Code)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	r := protectedRouter(&config.Config{JWTSecret: "secret"})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, 401, w.Code)
}

func TestRequireAuthBadToken(t *testing.T) {
	r := protectedRouter(&config.Config{JWTSecret: "secret"})

	signed, err := token.Generate("64f1a2b3c4d5e6f708192a3b", "a@b.c", "citizen", "other-secret", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, 401, w.Code)
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin",
		func(c *gin.Context) { c.Set("user", &User{Role: access.RoleCitizen}) },
		RequireRoles(access.RoleAdmin),
		func(c *gin.Context) { c.Status(200) },
	)
	r.GET("/dept",
		func(c *gin.Context) { c.Set("user", &User{Role: access.RoleDepartment}) },
		RequireRoles(access.RoleDepartment, access.RoleAdmin),
		func(c *gin.Context) { c.Status(200) },
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/admin", nil))
	require.Equal(t, 403, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/dept", nil))
	require.Equal(t, 200, w.Code)
}
