package verification

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/crimewatch/crimewatch-api/pkg/errors"
)

// VoteCounter supplies fresh vote aggregates for a report
type VoteCounter interface {
	CountVotes(ctx context.Context, reportID primitive.ObjectID) (upvotes, downvotes int64, err error)
}

// ProofCommentCounter supplies the count of corroborating comments (comments
// carrying at least one proof image) for a report
type ProofCommentCounter interface {
	CountProofComments(ctx context.Context, reportID primitive.ObjectID) (int64, error)
}

// TrustStore reads and writes the persisted trust fields on a report
type TrustStore interface {
	GetTrustState(ctx context.Context, reportID primitive.ObjectID) (score float64, verified bool, err error)
	UpdateTrustState(ctx context.Context, reportID primitive.ObjectID, score float64, verified bool) error
}

// Notifier is told when a report transitions to verified. Implementations
// must not block; failures are the notifier's problem, not the engine's.
type Notifier interface {
	ReportVerified(reportID primitive.ObjectID)
}

// Service recomputes a report's trust state whenever its vote or comment
// aggregates change. It is the only writer of the trust fields.
type Service struct {
	votes    VoteCounter
	comments ProofCommentCounter
	store    TrustStore
	notifier Notifier
}

// NewService creates the verification service
func NewService(votes VoteCounter, comments ProofCommentCounter, store TrustStore, notifier Notifier) *Service {
	return &Service{
		votes:    votes,
		comments: comments,
		store:    store,
		notifier: notifier,
	}
}

// Recompute reads fresh aggregates for the report and persists the derived
// trust state. It returns the persisted state after the call.
//
// A recompute for a report that no longer exists is a logged no-op: vote and
// comment events for deleted reports must not crash the pipeline. An empty
// snapshot leaves the stored state unchanged.
func (s *Service) Recompute(ctx context.Context, reportID primitive.ObjectID) (Result, error) {
	prevScore, prevVerified, err := s.store.GetTrustState(ctx, reportID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("verification: recompute skipped, report %s not found", reportID.Hex())
			return Result{}, nil
		}
		return Result{}, err
	}

	upvotes, downvotes, err := s.votes.CountVotes(ctx, reportID)
	if err != nil {
		return Result{}, err
	}

	proofComments, err := s.comments.CountProofComments(ctx, reportID)
	if err != nil {
		return Result{}, err
	}

	result := Compute(Snapshot{
		Upvotes:       upvotes,
		Downvotes:     downvotes,
		ProofComments: proofComments,
	})

	if !result.HasSignal {
		// No community signal yet: serve the prior persisted state
		return Result{
			Ratio:    prevScore,
			Score:    prevScore,
			Verified: prevVerified,
		}, nil
	}

	if err := s.store.UpdateTrustState(ctx, reportID, result.Score, result.Verified); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("verification: report %s deleted mid-recompute", reportID.Hex())
			return Result{}, nil
		}
		return Result{}, err
	}

	if result.Verified && !prevVerified && s.notifier != nil {
		s.notifier.ReportVerified(reportID)
	}

	return result, nil
}
