package comments

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crimewatch/crimewatch-api/internal/config"
	"github.com/crimewatch/crimewatch-api/internal/features/auth"
	"github.com/crimewatch/crimewatch-api/internal/features/reports"
	"github.com/crimewatch/crimewatch-api/internal/features/verification"
	"github.com/crimewatch/crimewatch-api/internal/pkg/ratelimit"
)

// RegisterRoutes registers the comment routes
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, verifier *verification.Service) {
	repo := NewRepository(db)
	reportsRepo := reports.NewRepository(db)
	authRepo := auth.NewRepository(db)

	handler := NewHandler(repo, reportsRepo, verifier)

	authMiddleware := auth.NewAuthMiddleware(authRepo, cfg)
	verifiedOnly := auth.RequireVerifiedUser()
	adminOnly := auth.RequireRole(auth.RoleAdmin)
	commentLimiter := ratelimit.UserBasedMiddleware(ratelimit.CommentLimiter())

	commentsGroup := router.Group("/comments")
	{
		commentsGroup.POST("/:reportId", authMiddleware, verifiedOnly, commentLimiter, handler.AddComment)
		commentsGroup.GET("/:reportId", handler.GetComments)
		commentsGroup.DELETE("/:id", authMiddleware, adminOnly, handler.DeleteComment)
	}
}
