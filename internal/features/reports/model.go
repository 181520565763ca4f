package reports

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sort options for listing
const (
	SortNewest = "newest"
	SortScore  = "score"
)

// CrimeReport represents a submitted crime incident record.
//
// VerificationScore and IsVerified are derived trust state: they are written
// exclusively by the verification engine and recomputed from fresh vote and
// comment aggregates, never incremented in place.
type CrimeReport struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Division    string             `bson:"division" json:"division"`
	District    string             `bson:"district" json:"district"`
	Images      []string           `bson:"images" json:"images"`
	Video       string             `bson:"video,omitempty" json:"video,omitempty"`
	PostTime    time.Time          `bson:"postTime" json:"postTime"`
	CrimeTime   time.Time          `bson:"crimeTime" json:"crimeTime"`

	VerificationScore float64 `bson:"verificationScore" json:"verificationScore"`
	IsVerified        bool    `bson:"isVerified" json:"isVerified"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// CreateReportRequest is the payload for POST /reports
type CreateReportRequest struct {
	Title       string    `json:"title" binding:"required,min=5,max=150"`
	Description string    `json:"description" binding:"required,min=20,max=5000"`
	Division    string    `json:"division" binding:"required"`
	District    string    `json:"district" binding:"required"`
	Images      []string  `json:"images" binding:"required,min=1,dive,url"`
	Video       string    `json:"video" binding:"omitempty,url"`
	CrimeTime   time.Time `json:"crimeTime" binding:"required"`
}

// ReportListQuery is the query for GET /reports
type ReportListQuery struct {
	Page     int    `form:"page,default=1" binding:"min=1"`
	Limit    int    `form:"limit,default=20" binding:"min=1,max=50"`
	Sort     string `form:"sort,default=newest"`
	Division string `form:"division"`
	District string `form:"district"`
	Verified *bool  `form:"verified"`
}

// TrustState is the read contract for the persisted trust fields
type TrustState struct {
	ID                primitive.ObjectID `json:"id"`
	VerificationScore float64            `json:"verificationScore"`
	IsVerified        bool               `json:"isVerified"`
}
