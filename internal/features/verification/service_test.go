package verification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/crimewatch/crimewatch-api/pkg/errors"
)

type stubAggregates struct {
	upvotes       int64
	downvotes     int64
	proofComments int64
}

func (s *stubAggregates) CountVotes(_ context.Context, _ primitive.ObjectID) (int64, int64, error) {
	return s.upvotes, s.downvotes, nil
}

func (s *stubAggregates) CountProofComments(_ context.Context, _ primitive.ObjectID) (int64, error) {
	return s.proofComments, nil
}

type stubTrustStore struct {
	missing  bool
	score    float64
	verified bool
	writes   int
}

func (s *stubTrustStore) GetTrustState(_ context.Context, _ primitive.ObjectID) (float64, bool, error) {
	if s.missing {
		return 0, false, apperrors.ErrNotFound
	}
	return s.score, s.verified, nil
}

func (s *stubTrustStore) UpdateTrustState(_ context.Context, _ primitive.ObjectID, score float64, verified bool) error {
	if s.missing {
		return apperrors.ErrNotFound
	}
	s.score = score
	s.verified = verified
	s.writes++
	return nil
}

type recordingNotifier struct {
	notified []primitive.ObjectID
}

func (n *recordingNotifier) ReportVerified(reportID primitive.ObjectID) {
	n.notified = append(n.notified, reportID)
}

func TestRecompute_PersistsDerivedState(t *testing.T) {
	agg := &stubAggregates{upvotes: 9, proofComments: 1}
	store := &stubTrustStore{}
	svc := NewService(agg, agg, store, nil)

	result, err := svc.Recompute(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	require.True(t, result.Verified)
	require.Equal(t, 1.0, store.score)
	require.True(t, store.verified)
	require.Equal(t, 1, store.writes)
}

func TestRecompute_MissingReportIsNoOp(t *testing.T) {
	agg := &stubAggregates{upvotes: 5}
	store := &stubTrustStore{missing: true}
	svc := NewService(agg, agg, store, nil)

	_, err := svc.Recompute(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	require.Zero(t, store.writes)
}

func TestRecompute_EmptySnapshotLeavesStateUnchanged(t *testing.T) {
	agg := &stubAggregates{}
	store := &stubTrustStore{score: 0.5, verified: false}
	svc := NewService(agg, agg, store, nil)

	result, err := svc.Recompute(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	require.Zero(t, store.writes)
	require.Equal(t, 0.5, result.Score)
	require.False(t, result.Verified)
}

func TestRecompute_NotifiesOnVerifiedTransition(t *testing.T) {
	agg := &stubAggregates{upvotes: 9, downvotes: 1}
	store := &stubTrustStore{}
	notifier := &recordingNotifier{}
	svc := NewService(agg, agg, store, notifier)

	reportID := primitive.NewObjectID()

	_, err := svc.Recompute(context.Background(), reportID)
	require.NoError(t, err)
	require.Equal(t, []primitive.ObjectID{reportID}, notifier.notified)

	// Already verified: recompute again, no second notification
	_, err = svc.Recompute(context.Background(), reportID)
	require.NoError(t, err)
	require.Len(t, notifier.notified, 1)
}

func TestRecompute_ConvergesAfterEventBurst(t *testing.T) {
	// Whatever interleaving produced the final aggregate, one recompute over
	// it yields the canonical state.
	agg := &stubAggregates{}
	store := &stubTrustStore{}
	svc := NewService(agg, agg, store, nil)

	reportID := primitive.NewObjectID()

	steps := []stubAggregates{
		{upvotes: 1},
		{upvotes: 1, downvotes: 1},
		{upvotes: 4, downvotes: 1},
		{upvotes: 4, downvotes: 1, proofComments: 2},
	}
	for _, step := range steps {
		*agg = step
		_, err := svc.Recompute(context.Background(), reportID)
		require.NoError(t, err)
	}

	want := Compute(Snapshot{Upvotes: 4, Downvotes: 1, ProofComments: 2})
	require.Equal(t, want.Score, store.score)
	require.Equal(t, want.Verified, store.verified)
}
