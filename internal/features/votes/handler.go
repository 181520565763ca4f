package votes

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crimewatch/crimewatch-api/internal/features/auth"
	"github.com/crimewatch/crimewatch-api/internal/features/reports"
	"github.com/crimewatch/crimewatch-api/internal/features/verification"
	"github.com/crimewatch/crimewatch-api/internal/pkg/response"
	apperrors "github.com/crimewatch/crimewatch-api/pkg/errors"
)

// Handler handles vote-related HTTP requests
type Handler struct {
	repo        *Repository
	reportsRepo *reports.Repository
	verifier    *verification.Service
}

// NewHandler creates a new vote handler
func NewHandler(repo *Repository, reportsRepo *reports.Repository, verifier *verification.Service) *Handler {
	return &Handler{
		repo:        repo,
		reportsRepo: reportsRepo,
		verifier:    verifier,
	}
}

// CastVote godoc
// @Summary Cast, toggle or switch a vote
// @Description Cast a vote on a crime report. Repeating the same polarity retracts the vote; the opposite polarity switches it in place.
// @Tags votes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CastVoteRequest true "Vote payload"
// @Success 200 {object} response.SuccessResponse{data=VoteActionResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /votes [post]
func (h *Handler) CastVote(c *gin.Context) {
	currentUser, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "crimeReportId and voteType (upvote|downvote) are required", "INVALID_VOTE_TYPE")
		return
	}

	if !IsValidPolarity(req.VoteType) {
		response.BadRequest(c, "voteType must be 'upvote' or 'downvote'", "INVALID_VOTE_TYPE")
		return
	}

	reportID, err := primitive.ObjectIDFromHex(req.CrimeReportID)
	if err != nil {
		response.BadRequest(c, "Invalid crime report ID format", "INVALID_ID")
		return
	}

	exists, err := h.reportsRepo.Exists(c.Request.Context(), reportID)
	if err != nil {
		response.InternalServerError(c, "Failed to look up crime report", "VOTE_FAILED")
		return
	}
	if !exists {
		response.NotFound(c, "Crime report not found", "REPORT_NOT_FOUND")
		return
	}

	if err := h.applyCast(c, currentUser.ID, reportID, req.VoteType); err != nil {
		response.InternalServerError(c, "Failed to record vote", "VOTE_FAILED")
		return
	}

	h.respondWithAggregate(c, reportID)
}

// applyCast resolves and applies the ledger transition. A duplicate-key
// race (two concurrent first casts by the same user) is resolved by
// re-reading the ledger and applying the transition once more.
func (h *Handler) applyCast(c *gin.Context, userID, reportID primitive.ObjectID, polarity string) error {
	for attempt := 0; attempt < 2; attempt++ {
		existing, err := h.repo.GetVote(c.Request.Context(), userID, reportID)
		if err != nil {
			return err
		}

		switch ResolveTransition(existing, polarity) {
		case ActionCreate:
			err = h.repo.CreateVote(c.Request.Context(), userID, reportID, polarity)
			if errors.Is(err, apperrors.ErrDuplicate) {
				continue
			}
			return err
		case ActionRemove:
			err = h.repo.DeleteVote(c.Request.Context(), userID, reportID)
			if errors.Is(err, apperrors.ErrNotFound) {
				// Lost a race with our own retraction; ledger already clean
				return nil
			}
			return err
		case ActionSwitch:
			err = h.repo.SwitchPolarity(c.Request.Context(), userID, reportID, polarity)
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return err
		}
	}
	return apperrors.ErrInternal
}

// RemoveVote godoc
// @Summary Remove own vote
// @Description Retract the caller's vote from a crime report
// @Tags votes
// @Produce json
// @Security BearerAuth
// @Param reportId path string true "Crime report ID"
// @Success 200 {object} response.SuccessResponse{data=VoteActionResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /votes/{reportId} [delete]
func (h *Handler) RemoveVote(c *gin.Context) {
	currentUser, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	reportID, err := primitive.ObjectIDFromHex(c.Param("reportId"))
	if err != nil {
		response.BadRequest(c, "Invalid crime report ID format", "INVALID_ID")
		return
	}

	err = h.repo.DeleteVote(c.Request.Context(), currentUser.ID, reportID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Vote not found", "VOTE_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to remove vote", "VOTE_FAILED")
		return
	}

	h.respondWithAggregate(c, reportID)
}

// GetAggregate godoc
// @Summary Get vote counts for a report
// @Description Return upvote/downvote totals and the persisted verification score
// @Tags votes
// @Produce json
// @Param reportId path string true "Crime report ID"
// @Success 200 {object} response.SuccessResponse{data=VoteActionResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /votes/{reportId} [get]
func (h *Handler) GetAggregate(c *gin.Context) {
	reportID, err := primitive.ObjectIDFromHex(c.Param("reportId"))
	if err != nil {
		response.BadRequest(c, "Invalid crime report ID format", "INVALID_ID")
		return
	}

	upvotes, downvotes, err := h.repo.CountVotes(c.Request.Context(), reportID)
	if err != nil {
		response.InternalServerError(c, "Failed to count votes", "COUNT_FAILED")
		return
	}

	trust, err := h.reportsRepo.GetTrust(c.Request.Context(), reportID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Crime report not found", "REPORT_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to read verification state", "TRUST_READ_FAILED")
		return
	}

	response.Success(c, VoteActionResponse{
		TotalUpvotes:      upvotes,
		TotalDownvotes:    downvotes,
		VerificationScore: trust.VerificationScore,
		IsVerified:        trust.IsVerified,
	})
}

// ListByReport godoc
// @Summary List votes on a report
// @Tags votes
// @Produce json
// @Param reportId path string true "Crime report ID"
// @Success 200 {object} response.SuccessResponse{data=[]Vote}
// @Failure 400 {object} response.ErrorResponse
// @Router /votes/report/{reportId} [get]
func (h *Handler) ListByReport(c *gin.Context) {
	reportID, err := primitive.ObjectIDFromHex(c.Param("reportId"))
	if err != nil {
		response.BadRequest(c, "Invalid crime report ID format", "INVALID_ID")
		return
	}

	votes, err := h.repo.ListByReport(c.Request.Context(), reportID)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch votes", "FETCH_FAILED")
		return
	}
	response.Success(c, votes)
}

// ListByUser godoc
// @Summary List votes by a user
// @Tags votes
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} response.SuccessResponse{data=[]Vote}
// @Failure 400 {object} response.ErrorResponse
// @Router /votes/user/{userId} [get]
func (h *Handler) ListByUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID format", "INVALID_ID")
		return
	}

	votes, err := h.repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch votes", "FETCH_FAILED")
		return
	}
	response.Success(c, votes)
}

// ListByUserAndReport godoc
// @Summary List a user's vote on a report
// @Tags votes
// @Produce json
// @Param userId path string true "User ID"
// @Param reportId path string true "Crime report ID"
// @Success 200 {object} response.SuccessResponse{data=[]Vote}
// @Failure 400 {object} response.ErrorResponse
// @Router /votes/user/{userId}/report/{reportId} [get]
func (h *Handler) ListByUserAndReport(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID format", "INVALID_ID")
		return
	}

	reportID, err := primitive.ObjectIDFromHex(c.Param("reportId"))
	if err != nil {
		response.BadRequest(c, "Invalid crime report ID format", "INVALID_ID")
		return
	}

	votes, err := h.repo.ListByUserAndReport(c.Request.Context(), userID, reportID)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch votes", "FETCH_FAILED")
		return
	}
	response.Success(c, votes)
}

// respondWithAggregate recomputes the report's trust state from fresh
// aggregates and returns the post-mutation counts. If the recompute itself
// fails transiently the prior persisted score is served instead of an error.
func (h *Handler) respondWithAggregate(c *gin.Context, reportID primitive.ObjectID) {
	upvotes, downvotes, err := h.repo.CountVotes(c.Request.Context(), reportID)
	if err != nil {
		response.InternalServerError(c, "Failed to count votes", "COUNT_FAILED")
		return
	}

	result, err := h.verifier.Recompute(c.Request.Context(), reportID)
	if err != nil {
		trust, trustErr := h.reportsRepo.GetTrust(c.Request.Context(), reportID)
		if trustErr != nil {
			response.InternalServerError(c, "Failed to recompute verification", "RECOMPUTE_FAILED")
			return
		}
		result.Score = trust.VerificationScore
		result.Verified = trust.IsVerified
	}

	response.Success(c, VoteActionResponse{
		TotalUpvotes:      upvotes,
		TotalDownvotes:    downvotes,
		VerificationScore: result.Score,
		IsVerified:        result.Verified,
	})
}
