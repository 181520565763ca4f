package votes

// Action is the ledger mutation a cast resolves to
type Action int

const (
	// ActionCreate inserts a new vote with the requested polarity
	ActionCreate Action = iota
	// ActionRemove deletes the existing vote (repeating the same polarity
	// retracts it)
	ActionRemove
	// ActionSwitch flips the existing vote's polarity in place
	ActionSwitch
)

// ResolveTransition decides how a cast mutates the ledger given the voter's
// existing vote for the report, if any. Pure function; the invariant that at
// most one vote row exists per (voter, report) pair is preserved by every
// outcome.
func ResolveTransition(existing *Vote, polarity string) Action {
	if existing == nil {
		return ActionCreate
	}
	if existing.Polarity == polarity {
		return ActionRemove
	}
	return ActionSwitch
}

// IsValidPolarity reports whether the polarity value is one the ledger
// accepts. Missing or unknown polarities are rejected, never defaulted.
func IsValidPolarity(polarity string) bool {
	return polarity == PolarityUpvote || polarity == PolarityDownvote
}
