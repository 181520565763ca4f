package comments

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/crimewatch/crimewatch-api/pkg/errors"
)

// Repository handles database interactions for comments
type Repository struct {
	collection *mongo.Collection
}

// NewRepository creates the repository and ensures indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("comments")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "reportId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
	})

	return &Repository{collection: collection}
}

// CreateComment inserts a new comment. Empty proof refs are stripped so the
// proof-presence query never counts blank strings.
func (r *Repository) CreateComment(ctx context.Context, comment *Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()

	var proof []string
	for _, ref := range comment.ProofImages {
		if strings.TrimSpace(ref) != "" {
			proof = append(proof, ref)
		}
	}
	comment.ProofImages = proof

	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

// GetCommentByID retrieves a comment by ID
func (r *Repository) GetCommentByID(ctx context.Context, commentID primitive.ObjectID) (*Comment, error) {
	var comment Comment
	err := r.collection.FindOne(ctx, bson.M{"_id": commentID}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment (admin moderation path)
func (r *Repository) DeleteComment(ctx context.Context, commentID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": commentID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListByReport returns comments on a report with pagination, newest first
func (r *Repository) ListByReport(ctx context.Context, reportID primitive.ObjectID, page, limit int) ([]Comment, int64, error) {
	filter := bson.M{"reportId": reportID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	comments := []Comment{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// CountProofComments counts corroborating comments for a report: comments
// whose proofImages array exists and is non-empty. Satisfies the
// verification engine's counter contract.
func (r *Repository) CountProofComments(ctx context.Context, reportID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"reportId":    reportID,
		"proofImages": bson.M{"$exists": true, "$not": bson.M{"$size": 0}},
	})
}
