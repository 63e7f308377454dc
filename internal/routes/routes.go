package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/civicfix/api/internal/config"
	"github.com/civicfix/api/internal/features/auth"
	"github.com/civicfix/api/internal/features/cities"
	"github.com/civicfix/api/internal/features/comments"
	"github.com/civicfix/api/internal/features/issues"
	"github.com/civicfix/api/internal/features/media"
	"github.com/civicfix/api/internal/features/predict"
	"github.com/civicfix/api/internal/features/users"
	"github.com/civicfix/api/internal/pkg/access"
	"github.com/civicfix/api/internal/pkg/cloudinary"
	"github.com/civicfix/api/internal/pkg/ratelimit"
)

// SetupRoutes builds the repositories once and wires every feature under
// /api. rdb may be nil, in which case issue creation is not rate limited.
func SetupRoutes(router *gin.Engine, db *mongo.Database, rdb *redis.Client, cfg *config.Config) {
	api := router.Group("/api")

	usersRepo := auth.NewRepository(db)
	citiesRepo := cities.NewRepository(db)
	issuesRepo := issues.NewRepository(db)
	commentsRepo := comments.NewRepository(db)

	cld, _ := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, "civicfix")

	requireAuth := auth.RequireAuth(usersRepo, cfg)
	requireAdmin := auth.RequireRoles(access.RoleAdmin)

	// Per-account daily cap on issue creation.
	var createLimit gin.HandlerFunc
	if rdb != nil && cfg.IssueRateLimit > 0 {
		limiter := ratelimit.New(rdb, "issues:create", cfg.IssueRateLimit, 24*time.Hour)
		createLimit = ratelimit.Middleware(limiter, func(c *gin.Context) string {
			return c.GetString("userID")
		})
	}

	issuesHandler := issues.NewHandler(issuesRepo, usersRepo, citiesRepo, commentsRepo)
	commentsHandler := comments.NewHandler(commentsRepo, usersRepo, issuesRepo)

	modelClient := predict.NewClient(cfg.ModelServiceURL, time.Duration(cfg.ModelTimeoutSeconds)*time.Second)

	auth.RegisterRoutes(api, cfg, usersRepo, citiesRepo, cld, requireAuth)
	users.RegisterRoutes(api, usersRepo, requireAuth, requireAdmin)
	cities.RegisterRoutes(api, citiesRepo, requireAuth, requireAdmin)
	issues.RegisterRoutes(api, issuesHandler, requireAuth, createLimit)
	comments.RegisterRoutes(api, commentsHandler, requireAuth)
	media.RegisterRoutes(api, cld, requireAuth)
	predict.RegisterRoutes(api, modelClient)
}
