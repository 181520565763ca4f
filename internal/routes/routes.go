package routes

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/crimewatch/crimewatch-api/internal/config"
	"github.com/crimewatch/crimewatch-api/internal/features/advisory"
	"github.com/crimewatch/crimewatch-api/internal/features/auth"
	"github.com/crimewatch/crimewatch-api/internal/features/comments"
	"github.com/crimewatch/crimewatch-api/internal/features/media"
	"github.com/crimewatch/crimewatch-api/internal/features/notifications"
	"github.com/crimewatch/crimewatch-api/internal/features/reports"
	"github.com/crimewatch/crimewatch-api/internal/features/verification"
	"github.com/crimewatch/crimewatch-api/internal/features/votes"
)

func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config) {
	// API v1 group
	api := router.Group("/api/v1")

	// Shared repositories feeding the verification engine
	reportsRepo := reports.NewRepository(db)
	votesRepo := votes.NewRepository(db)
	commentsRepo := comments.NewRepository(db)
	notificationsRepo := notifications.NewRepository(db)

	// Push delivery is optional; in-app notifications work without it
	fcm, err := notifications.InitMessaging(cfg)
	if err != nil {
		log.Printf("routes: firebase messaging unavailable: %v", err)
	}
	notifier := notifications.NewService(notificationsRepo, reportsRepo, fcm)

	// The verification service is the single writer of report trust state
	verifier := verification.NewService(votesRepo, commentsRepo, reportsRepo, notifier)

	// Register feature routes
	auth.RegisterRoutes(api, db, cfg)
	reports.RegisterRoutes(api, db, cfg)
	votes.RegisterRoutes(api, db, cfg, verifier)
	comments.RegisterRoutes(api, db, cfg, verifier)
	notifications.RegisterRoutes(api, db, cfg)
	media.RegisterRoutes(api, db, cfg)

	// Fake-report advisory: moderator signal from an external scorer,
	// fully isolated from the voting and verification path
	var analyzer advisory.Analyzer
	if cfg.GeminiAPIKey != "" {
		gemini, err := advisory.NewGeminiAnalyzer(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			log.Printf("routes: gemini analyzer unavailable: %v", err)
		} else {
			analyzer = gemini
		}
	}

	authRepo := auth.NewRepository(db)
	authMiddleware := auth.NewAuthMiddleware(authRepo, cfg)

	advisoryHandler := advisory.NewHandler(reportsRepo, analyzer)
	api.GET("/reports/:id/analyze", authMiddleware, advisoryHandler.AnalyzeReport)
}
