package votes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveTransition_NoExistingVoteCreates(t *testing.T) {
	require.Equal(t, ActionCreate, ResolveTransition(nil, PolarityUpvote))
	require.Equal(t, ActionCreate, ResolveTransition(nil, PolarityDownvote))
}

func TestResolveTransition_ToggleLaw(t *testing.T) {
	// Repeating the same polarity retracts the vote
	existing := &Vote{Polarity: PolarityUpvote}
	require.Equal(t, ActionRemove, ResolveTransition(existing, PolarityUpvote))

	existing = &Vote{Polarity: PolarityDownvote}
	require.Equal(t, ActionRemove, ResolveTransition(existing, PolarityDownvote))
}

func TestResolveTransition_SwitchLaw(t *testing.T) {
	// The opposite polarity flips the vote in place, never creating a
	// second row
	existing := &Vote{Polarity: PolarityUpvote}
	require.Equal(t, ActionSwitch, ResolveTransition(existing, PolarityDownvote))

	existing = &Vote{Polarity: PolarityDownvote}
	require.Equal(t, ActionSwitch, ResolveTransition(existing, PolarityUpvote))
}

func TestResolveTransition_CastSequenceReturnsToBaseline(t *testing.T) {
	// cast(up) then cast(up) again must round-trip to the pre-vote state
	var existing *Vote

	action := ResolveTransition(existing, PolarityUpvote)
	require.Equal(t, ActionCreate, action)
	existing = &Vote{Polarity: PolarityUpvote}

	action = ResolveTransition(existing, PolarityUpvote)
	require.Equal(t, ActionRemove, action)
}

func TestIsValidPolarity(t *testing.T) {
	require.True(t, IsValidPolarity(PolarityUpvote))
	require.True(t, IsValidPolarity(PolarityDownvote))

	// No implicit default: empty and unknown values are rejected
	require.False(t, IsValidPolarity(""))
	require.False(t, IsValidPolarity("like"))
	require.False(t, IsValidPolarity("Upvote"))
}
