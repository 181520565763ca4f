package votes

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Polarity values
const (
	PolarityUpvote   = "upvote"
	PolarityDownvote = "downvote"
)

// Vote represents a single user's vote on a crime report. At most one vote
// exists per (user, report) pair, enforced by a unique compound index.
type Vote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	ReportID  primitive.ObjectID `bson:"reportId" json:"reportId"`
	Polarity  string             `bson:"polarity" json:"polarity"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Aggregate holds the vote counts for one report
type Aggregate struct {
	Upvotes   int64 `json:"totalUpvotes"`
	Downvotes int64 `json:"totalDownvotes"`
}

// CastVoteRequest is the payload for POST /votes. Polarity is explicit and
// required; there is no implicit default.
type CastVoteRequest struct {
	CrimeReportID string `json:"crimeReportId" binding:"required"`
	VoteType      string `json:"voteType" binding:"required,oneof=upvote downvote"`
}

// VoteActionResponse is returned after cast/toggle/switch/remove
type VoteActionResponse struct {
	TotalUpvotes      int64   `json:"totalUpvotes"`
	TotalDownvotes    int64   `json:"totalDownvotes"`
	VerificationScore float64 `json:"verificationScore"`
	IsVerified        bool    `json:"isVerified"`
}
