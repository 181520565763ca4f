package comments

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crimewatch/crimewatch-api/internal/features/auth"
	"github.com/crimewatch/crimewatch-api/internal/features/reports"
	"github.com/crimewatch/crimewatch-api/internal/features/verification"
	"github.com/crimewatch/crimewatch-api/internal/pkg/response"
	apperrors "github.com/crimewatch/crimewatch-api/pkg/errors"
)

// Handler handles comment-related HTTP requests
type Handler struct {
	repo        *Repository
	reportsRepo *reports.Repository
	verifier    *verification.Service
}

// NewHandler creates a new comment handler
func NewHandler(repo *Repository, reportsRepo *reports.Repository, verifier *verification.Service) *Handler {
	return &Handler{
		repo:        repo,
		reportsRepo: reportsRepo,
		verifier:    verifier,
	}
}

// AddComment godoc
// @Summary Comment on a crime report
// @Description Add a comment, optionally with proof image URLs. Proof-bearing comments count as corroborating signals.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reportId path string true "Crime report ID"
// @Param request body CreateCommentRequest true "Comment payload"
// @Success 201 {object} response.SuccessResponse{data=Comment}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /comments/{reportId} [post]
func (h *Handler) AddComment(c *gin.Context) {
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

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_REQUEST")
		return
	}

	exists, err := h.reportsRepo.Exists(c.Request.Context(), reportID)
	if err != nil {
		response.InternalServerError(c, "Failed to look up crime report", "COMMENT_FAILED")
		return
	}
	if !exists {
		response.NotFound(c, "Crime report not found", "REPORT_NOT_FOUND")
		return
	}

	comment := &Comment{
		ReportID:    reportID,
		UserID:      currentUser.ID,
		Body:        req.Body,
		ProofImages: req.ProofImages,
	}

	if err := h.repo.CreateComment(c.Request.Context(), comment); err != nil {
		response.InternalServerError(c, "Failed to add comment", "COMMENT_FAILED")
		return
	}

	// A proof-bearing comment changes the report's signal aggregate
	if comment.HasProof() {
		go func() {
			_, _ = h.verifier.Recompute(context.Background(), reportID)
		}()
	}

	response.Created(c, comment)
}

// GetComments godoc
// @Summary List comments on a crime report
// @Tags comments
// @Produce json
// @Param reportId path string true "Crime report ID"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 20, max 50)"
// @Success 200 {object} response.PaginatedResponse{data=[]Comment}
// @Failure 400 {object} response.ErrorResponse
// @Router /comments/{reportId} [get]
func (h *Handler) GetComments(c *gin.Context) {
	reportID, err := primitive.ObjectIDFromHex(c.Param("reportId"))
	if err != nil {
		response.BadRequest(c, "Invalid crime report ID format", "INVALID_ID")
		return
	}

	var query CommentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_QUERY")
		return
	}

	comments, total, err := h.repo.ListByReport(c.Request.Context(), reportID, query.Page, query.Limit)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch comments", "FETCH_FAILED")
		return
	}

	response.Paginated(c, comments, total, query.Limit, query.Page)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Admin moderation: remove a comment. Deleting a proof-bearing comment retriggers verification.
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /comments/{id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	commentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid comment ID format", "INVALID_ID")
		return
	}

	comment, err := h.repo.GetCommentByID(c.Request.Context(), commentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Comment not found", "COMMENT_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to fetch comment", "FETCH_FAILED")
		return
	}

	if err := h.repo.DeleteComment(c.Request.Context(), commentID); err != nil {
		response.InternalServerError(c, "Failed to delete comment", "DELETE_FAILED")
		return
	}

	if comment.HasProof() {
		go func() {
			_, _ = h.verifier.Recompute(context.Background(), comment.ReportID)
		}()
	}

	response.Success(c, gin.H{"deleted": true})
}
