package verification

// VerifiedThreshold is the credibility ratio at or above which a report is
// marked community-verified. Fixed design constant, not configurable.
const VerifiedThreshold = 0.80

// Snapshot holds the aggregate community signals for one report, read fresh
// from storage at recompute time.
type Snapshot struct {
	Upvotes       int64
	Downvotes     int64
	ProofComments int64
}

// TotalSignals is the number of community signals in the snapshot
func (s Snapshot) TotalSignals() int64 {
	return s.Upvotes + s.Downvotes + s.ProofComments
}

// Result is the derived trust state for a snapshot
type Result struct {
	// Ratio is the raw normalized credibility ratio in [-1, 1]. Exposed for
	// ranking and UI so the boolean flag is not the only signal.
	Ratio float64
	// Score is the persisted verification score: the ratio clamped at zero.
	Score float64
	// Verified is true when the raw ratio meets the threshold.
	Verified bool
	// HasSignal is false when the snapshot is empty; the caller must leave
	// the persisted trust state unchanged in that case.
	HasSignal bool
}

// Compute derives the trust state from a snapshot.
//
// A proof-bearing comment carries the same weight as an upvote; a downvote
// carries negative weight. The function is pure: identical snapshots always
// produce identical results, and it never applies deltas to prior state.
func Compute(s Snapshot) Result {
	total := s.TotalSignals()
	if total == 0 {
		return Result{}
	}

	ratio := float64(s.Upvotes-s.Downvotes+s.ProofComments) / float64(total)

	score := ratio
	if score < 0 {
		score = 0
	}

	return Result{
		Ratio:     ratio,
		Score:     score,
		Verified:  ratio >= VerifiedThreshold,
		HasSignal: true,
	}
}
