package verification

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompute_NoSignals(t *testing.T) {
	result := Compute(Snapshot{})

	require.False(t, result.HasSignal)
	require.False(t, result.Verified)
	require.Zero(t, result.Score)
}

func TestCompute_Idempotent(t *testing.T) {
	snapshots := []Snapshot{
		{Upvotes: 10, Downvotes: 2, ProofComments: 0},
		{Upvotes: 0, Downvotes: 5, ProofComments: 1},
		{Upvotes: 9, Downvotes: 0, ProofComments: 1},
		{},
	}

	for _, s := range snapshots {
		first := Compute(s)
		second := Compute(s)
		require.Equal(t, first, second)
	}
}

func TestCompute_MajorityUpvotesBelowThreshold(t *testing.T) {
	// 10 up, 2 down, no proof comments: ratio 8/12
	result := Compute(Snapshot{Upvotes: 10, Downvotes: 2})

	require.True(t, result.HasSignal)
	require.InDelta(t, 8.0/12.0, result.Ratio, 1e-9)
	require.False(t, result.Verified)
}

func TestCompute_ProofCommentsAddedStillBelowThreshold(t *testing.T) {
	// Same report gains 3 proof-bearing comments: ratio 11/15
	result := Compute(Snapshot{Upvotes: 10, Downvotes: 2, ProofComments: 3})

	require.InDelta(t, 11.0/15.0, result.Ratio, 1e-9)
	require.False(t, result.Verified)
}

func TestCompute_UnanimousSignalsVerified(t *testing.T) {
	// 9 up, 0 down, 1 proof comment: ratio 10/10
	result := Compute(Snapshot{Upvotes: 9, ProofComments: 1})

	require.InDelta(t, 1.0, result.Ratio, 1e-9)
	require.True(t, result.Verified)
	require.Equal(t, 1.0, result.Score)
}

func TestCompute_ThresholdBoundary(t *testing.T) {
	// 9 up, 1 down: ratio exactly 0.80, inclusive threshold
	result := Compute(Snapshot{Upvotes: 9, Downvotes: 1})
	require.InDelta(t, 0.80, result.Ratio, 1e-9)
	require.True(t, result.Verified)

	// 17 up, 2 down: ratio 15/19 just below 0.80
	result = Compute(Snapshot{Upvotes: 17, Downvotes: 2})
	require.Less(t, result.Ratio, 0.80)
	require.False(t, result.Verified)
}

func TestCompute_NegativeRatioClampedToZeroScore(t *testing.T) {
	// 3 up, 7 down: ratio is negative, persisted score must not be
	result := Compute(Snapshot{Upvotes: 3, Downvotes: 7})

	require.True(t, result.HasSignal)
	require.InDelta(t, -4.0/10.0, result.Ratio, 1e-9)
	require.Equal(t, 0.0, result.Score)
	require.False(t, result.Verified)
}

func TestCompute_ProofCommentWeighsLikeUpvote(t *testing.T) {
	withComment := Compute(Snapshot{Upvotes: 4, Downvotes: 1, ProofComments: 1})
	withUpvote := Compute(Snapshot{Upvotes: 5, Downvotes: 1})

	require.Equal(t, withUpvote.Ratio, withComment.Ratio)
	require.Equal(t, withUpvote.Verified, withComment.Verified)
}
