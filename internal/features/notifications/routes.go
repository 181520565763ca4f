package notifications

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crimewatch/crimewatch-api/internal/config"
	"github.com/crimewatch/crimewatch-api/internal/features/auth"
)

// RegisterRoutes registers the notification routes
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) {
	repo := NewRepository(db)
	authRepo := auth.NewRepository(db)

	handler := NewHandler(repo)

	authMiddleware := auth.NewAuthMiddleware(authRepo, cfg)

	notificationsGroup := router.Group("/notifications")
	notificationsGroup.Use(authMiddleware)
	{
		notificationsGroup.GET("", handler.ListNotifications)
		notificationsGroup.GET("/unread-count", handler.GetUnreadCount)
		notificationsGroup.PATCH("/:id/read", handler.MarkAsRead)
		notificationsGroup.PATCH("/read-all", handler.MarkAllAsRead)
		notificationsGroup.POST("/token", handler.RegisterToken)
	}
}
