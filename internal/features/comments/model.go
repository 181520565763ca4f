package comments

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on a crime report. A comment corroborates
// the report only when it carries at least one non-empty proof image
// reference; such comments feed the verification engine.
type Comment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReportID    primitive.ObjectID `bson:"reportId" json:"reportId"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Body        string             `bson:"body" json:"body"`
	ProofImages []string           `bson:"proofImages,omitempty" json:"proofImages,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// HasProof reports whether the comment counts as corroborating
func (c *Comment) HasProof() bool {
	for _, ref := range c.ProofImages {
		if strings.TrimSpace(ref) != "" {
			return true
		}
	}
	return false
}

// CreateCommentRequest is the payload for POST /comments/:reportId
type CreateCommentRequest struct {
	Body        string   `json:"body" binding:"required,min=1,max=1000"`
	ProofImages []string `json:"proofImages" binding:"omitempty,max=5,dive,url"`
}

// CommentListQuery is the query for GET /comments/:reportId
type CommentListQuery struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=20" binding:"min=1,max=50"`
}
