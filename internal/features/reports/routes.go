package reports

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crimewatch/crimewatch-api/internal/config"
	"github.com/crimewatch/crimewatch-api/internal/features/auth"
)

// RegisterRoutes registers the crime report routes
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)
	authRepo := auth.NewRepository(db)

	handler := NewHandler(repo)

	authMiddleware := auth.NewAuthMiddleware(authRepo, cfg)
	verifiedOnly := auth.RequireVerifiedUser()

	reportsGroup := router.Group("/reports")
	{
		reportsGroup.POST("", authMiddleware, verifiedOnly, handler.CreateReport)
		reportsGroup.GET("", handler.ListReports)
		reportsGroup.GET("/:id", handler.GetReport)
		reportsGroup.GET("/:id/verification", handler.GetVerification)
	}
}
