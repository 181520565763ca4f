package reports

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

// Repository handles database interactions for crime reports
type Repository struct {
	collection *mongo.Collection
}

// NewRepository creates the repository and ensures indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("crimeReports")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			// Listing by recency
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
		{
			// Ranking by derived trust
			Keys: bson.D{
				{Key: "verificationScore", Value: -1},
				{Key: "createdAt", Value: -1},
			},
		},
		{
			// Area filters
			Keys: bson.D{
				{Key: "division", Value: 1},
				{Key: "district", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
	})

	return &Repository{collection: collection}
}

// CreateReport inserts a new report with zeroed trust state
func (r *Repository) CreateReport(ctx context.Context, report *CrimeReport) error {
	report.ID = primitive.NewObjectID()
	report.CreatedAt = time.Now()
	report.UpdatedAt = time.Now()
	if report.PostTime.IsZero() {
		report.PostTime = report.CreatedAt
	}
	report.VerificationScore = 0
	report.IsVerified = false

	_, err := r.collection.InsertOne(ctx, report)
	return err
}

// GetReportByID retrieves a report by ID
func (r *Repository) GetReportByID(ctx context.Context, reportID primitive.ObjectID) (*CrimeReport, error) {
	var report CrimeReport
	err := r.collection.FindOne(ctx, bson.M{"_id": reportID}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// Exists reports whether a report document exists
func (r *Repository) Exists(ctx context.Context, reportID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": reportID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListReports returns reports matching the query with pagination
func (r *Repository) ListReports(ctx context.Context, query *ReportListQuery) ([]CrimeReport, int64, error) {
	filter := bson.M{}
	if query.Division != "" {
		filter["division"] = query.Division
	}
	if query.District != "" {
		filter["district"] = query.District
	}
	if query.Verified != nil {
		filter["isVerified"] = *query.Verified
	}

	sort := bson.D{{Key: "createdAt", Value: -1}}
	if query.Sort == SortScore {
		sort = bson.D{
			{Key: "verificationScore", Value: -1},
			{Key: "createdAt", Value: -1},
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64((query.Page - 1) * query.Limit)).
		SetLimit(int64(query.Limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var results []CrimeReport
	if err = cursor.All(ctx, &results); err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

// GetTrust returns the persisted trust fields for a report
func (r *Repository) GetTrust(ctx context.Context, reportID primitive.ObjectID) (*TrustState, error) {
	var report CrimeReport
	opts := options.FindOne().SetProjection(bson.M{
		"verificationScore": 1,
		"isVerified":        1,
	})
	err := r.collection.FindOne(ctx, bson.M{"_id": reportID}, opts).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return &TrustState{
		ID:                reportID,
		VerificationScore: report.VerificationScore,
		IsVerified:        report.IsVerified,
	}, nil
}

// GetTrustState returns the raw persisted trust fields. It exists to satisfy
// the verification engine's store contract.
func (r *Repository) GetTrustState(ctx context.Context, reportID primitive.ObjectID) (float64, bool, error) {
	trust, err := r.GetTrust(ctx, reportID)
	if err != nil {
		return 0, false, err
	}
	return trust.VerificationScore, trust.IsVerified, nil
}

// UpdateTrustState persists the derived trust fields. It is called only by
// the verification engine; no other code path writes these fields.
func (r *Repository) UpdateTrustState(ctx context.Context, reportID primitive.ObjectID, score float64, verified bool) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": reportID},
		bson.M{"$set": bson.M{
			"verificationScore": score,
			"isVerified":        verified,
			"updatedAt":         time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
