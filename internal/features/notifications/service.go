package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"google.golang.org/api/option"

	"github.com/crimewatch/crimewatch-api/internal/config"
	"github.com/crimewatch/crimewatch-api/internal/features/reports"
)

const notifyTimeout = 15 * time.Second

// InitMessaging initializes the Firebase Admin SDK and returns the FCM
// messaging client. Returns nil when no service account is configured;
// in-app notifications still work without push delivery.
func InitMessaging(cfg *config.Config) (*messaging.Client, error) {
	if cfg.FirebaseServiceAccountPath == "" {
		return nil, nil
	}

	opt := option.WithCredentialsFile(cfg.FirebaseServiceAccountPath)
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %v", err)
	}

	client, err := app.Messaging(context.Background())
	if err != nil {
		return nil, fmt.Errorf("error getting firebase messaging client: %v", err)
	}

	return client, nil
}

// ReportLookup loads the report a notification is about
type ReportLookup interface {
	GetReportByID(ctx context.Context, reportID primitive.ObjectID) (*reports.CrimeReport, error)
}

// Service creates in-app notifications and delivers FCM pushes
type Service struct {
	repo    *Repository
	reports ReportLookup
	fcm     *messaging.Client
}

// NewService creates the notification service. fcm may be nil.
func NewService(repo *Repository, reportsRepo ReportLookup, fcm *messaging.Client) *Service {
	return &Service{
		repo:    repo,
		reports: reportsRepo,
		fcm:     fcm,
	}
}

// ReportVerified notifies the reporter that their report reached verified
// status. It runs in the background so callers never block on delivery.
func (s *Service) ReportVerified(reportID primitive.ObjectID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		report, err := s.reports.GetReportByID(ctx, reportID)
		if err != nil {
			log.Printf("notifications: report %s lookup failed: %v", reportID.Hex(), err)
			return
		}

		notification := &Notification{
			RecipientID: report.UserID,
			Type:        TypeReportVerified,
			ReportID:    report.ID,
			Preview:     truncate(report.Title, 100),
		}
		if err := s.repo.CreateNotification(ctx, notification); err != nil {
			log.Printf("notifications: create failed for report %s: %v", reportID.Hex(), err)
		}

		s.push(ctx, report.UserID, "Report verified", "Your report \""+truncate(report.Title, 60)+"\" has been verified by the community.", map[string]string{
			"type":     TypeReportVerified,
			"reportId": report.ID.Hex(),
		})
	}()
}

// push sends an FCM message to each of the user's devices and prunes
// tokens FCM reports as dead
func (s *Service) push(ctx context.Context, userID primitive.ObjectID, title, body string, data map[string]string) {
	if s.fcm == nil {
		return
	}

	tokens, err := s.repo.GetTokensByUser(ctx, userID)
	if err != nil {
		log.Printf("notifications: token lookup failed for user %s: %v", userID.Hex(), err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	var dead []string
	for _, token := range tokens {
		msg := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
		}

		if _, err := s.fcm.Send(ctx, msg); err != nil {
			if messaging.IsRegistrationTokenNotRegistered(err) {
				dead = append(dead, token)
				continue
			}
			log.Printf("notifications: push failed for user %s: %v", userID.Hex(), err)
		}
	}

	if err := s.repo.DeleteTokens(ctx, dead); err != nil {
		log.Printf("notifications: token cleanup failed: %v", err)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
