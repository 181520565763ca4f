package media

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crimewatch/crimewatch-api/internal/config"
	"github.com/crimewatch/crimewatch-api/internal/features/auth"
	"github.com/crimewatch/crimewatch-api/internal/pkg/cloudinary"
)

// RegisterRoutes registers the media upload routes
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	cld, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, "crimewatch")
	if err != nil {
		// Uploads will answer 503 until credentials are configured
		log.Printf("media: cloudinary unavailable: %v", err)
	}

	authRepo := auth.NewRepository(db)
	authMiddleware := auth.NewAuthMiddleware(authRepo, cfg)

	handler := NewHandler(cld)

	mediaGroup := router.Group("/media")
	mediaGroup.Use(authMiddleware)
	{
		mediaGroup.POST("/upload", handler.UploadMedia)
	}
}
