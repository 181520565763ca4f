package votes

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/crimewatch/crimewatch-api/pkg/errors"
)

// Repository is the vote ledger. It maintains the at-most-one-vote-per-
// (user, report) invariant and exposes aggregate counts.
type Repository struct {
	collection *mongo.Collection
}

// NewRepository creates the ledger and ensures indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("votes")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			// Hard invariant: one vote per (user, report). Concurrent casts
			// from the same user surface as duplicate-key errors instead of
			// duplicate rows.
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "reportId", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			// Aggregate counts by polarity
			Keys: bson.D{
				{Key: "reportId", Value: 1},
				{Key: "polarity", Value: 1},
			},
		},
		{
			// Audit listing per user
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
	})

	return &Repository{collection: collection}
}

// GetVote returns the voter's vote for a report, or nil when none exists
func (r *Repository) GetVote(ctx context.Context, userID, reportID primitive.ObjectID) (*Vote, error) {
	var vote Vote
	err := r.collection.FindOne(ctx, bson.M{
		"userId":   userID,
		"reportId": reportID,
	}).Decode(&vote)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &vote, nil
}

// CreateVote inserts a new vote. A concurrent duplicate cast from the same
// user loses to the unique index and comes back as ErrDuplicate.
func (r *Repository) CreateVote(ctx context.Context, userID, reportID primitive.ObjectID, polarity string) error {
	now := time.Now()
	vote := &Vote{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		ReportID:  reportID,
		Polarity:  polarity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := r.collection.InsertOne(ctx, vote)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrDuplicate
		}
		return err
	}
	return nil
}

// SwitchPolarity flips an existing vote in place
func (r *Repository) SwitchPolarity(ctx context.Context, userID, reportID primitive.ObjectID, polarity string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"userId": userID, "reportId": reportID},
		bson.M{"$set": bson.M{"polarity": polarity, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteVote removes the voter's vote for a report
func (r *Repository) DeleteVote(ctx context.Context, userID, reportID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{
		"userId":   userID,
		"reportId": reportID,
	})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountVotes returns fresh aggregate counts by polarity for a report. This
// is the only aggregate the verification engine consumes; it is always a
// full count, never a cached delta.
func (r *Repository) CountVotes(ctx context.Context, reportID primitive.ObjectID) (int64, int64, error) {
	upvotes, err := r.collection.CountDocuments(ctx, bson.M{
		"reportId": reportID,
		"polarity": PolarityUpvote,
	})
	if err != nil {
		return 0, 0, err
	}

	downvotes, err := r.collection.CountDocuments(ctx, bson.M{
		"reportId": reportID,
		"polarity": PolarityDownvote,
	})
	if err != nil {
		return 0, 0, err
	}

	return upvotes, downvotes, nil
}

// ListByReport returns all votes on a report, newest first
func (r *Repository) ListByReport(ctx context.Context, reportID primitive.ObjectID) ([]Vote, error) {
	return r.list(ctx, bson.M{"reportId": reportID})
}

// ListByUser returns all votes a user has cast, newest first
func (r *Repository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]Vote, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

// ListByUserAndReport returns the user's vote for a report as a list, for
// the audit surface (0 or 1 entries when the invariant holds)
func (r *Repository) ListByUserAndReport(ctx context.Context, userID, reportID primitive.ObjectID) ([]Vote, error) {
	return r.list(ctx, bson.M{"userId": userID, "reportId": reportID})
}

func (r *Repository) list(ctx context.Context, filter bson.M) ([]Vote, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	votes := []Vote{}
	if err = cursor.All(ctx, &votes); err != nil {
		return nil, err
	}
	return votes, nil
}
