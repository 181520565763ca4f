package votes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crimewatch/crimewatch-api/internal/config"
	"github.com/crimewatch/crimewatch-api/internal/features/auth"
	"github.com/crimewatch/crimewatch-api/internal/features/reports"
	"github.com/crimewatch/crimewatch-api/internal/features/verification"
	"github.com/crimewatch/crimewatch-api/internal/pkg/ratelimit"
)

// RegisterRoutes registers the vote ledger routes
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, verifier *verification.Service) {
	repo := NewRepository(db)
	reportsRepo := reports.NewRepository(db)
	authRepo := auth.NewRepository(db)

	handler := NewHandler(repo, reportsRepo, verifier)

	authMiddleware := auth.NewAuthMiddleware(authRepo, cfg)
	verifiedOnly := auth.RequireVerifiedUser()
	voteLimiter := ratelimit.UserBasedMiddleware(ratelimit.VoteLimiter())

	votesGroup := router.Group("/votes")
	{
		// Mutations: verified users only, rate limited
		votesGroup.POST("", authMiddleware, verifiedOnly, voteLimiter, handler.CastVote)
		votesGroup.DELETE("/:reportId", authMiddleware, verifiedOnly, handler.RemoveVote)

		// Public reads
		votesGroup.GET("/:reportId", handler.GetAggregate)
		votesGroup.GET("/report/:reportId", handler.ListByReport)
		votesGroup.GET("/user/:userId", handler.ListByUser)
		votesGroup.GET("/user/:userId/report/:reportId", handler.ListByUserAndReport)
	}
}
