package advisory

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crimewatch/crimewatch-api/internal/features/reports"
	"github.com/crimewatch/crimewatch-api/internal/pkg/response"
	apperrors "github.com/crimewatch/crimewatch-api/pkg/errors"
)

// analysisTimeout bounds the external scorer call
const analysisTimeout = 30 * time.Second

// AnalysisResponse wraps the opaque analysis text
type AnalysisResponse struct {
	Analysis string `json:"analysis"`
}

// ReportGetter loads the report under analysis
type ReportGetter interface {
	GetReportByID(ctx context.Context, reportID primitive.ObjectID) (*reports.CrimeReport, error)
}

// Handler handles advisory HTTP requests
type Handler struct {
	reportsRepo ReportGetter
	analyzer    Analyzer
}

// NewHandler creates a new advisory handler
func NewHandler(reportsRepo ReportGetter, analyzer Analyzer) *Handler {
	return &Handler{
		reportsRepo: reportsRepo,
		analyzer:    analyzer,
	}
}

// AnalyzeReport godoc
// @Summary Request a fake-report advisory
// @Description Ask the external scorer for an opaque assessment of the report. The result is a moderator signal and never feeds the verification score.
// @Tags advisory
// @Produce json
// @Security BearerAuth
// @Param id path string true "Crime report ID"
// @Success 200 {object} response.SuccessResponse{data=AnalysisResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /reports/{id}/analyze [get]
func (h *Handler) AnalyzeReport(c *gin.Context) {
	reportID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid crime report ID format", "INVALID_ID")
		return
	}

	report, err := h.reportsRepo.GetReportByID(c.Request.Context(), reportID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Crime report not found", "REPORT_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to fetch crime report", "FETCH_FAILED")
		return
	}

	if h.analyzer == nil {
		response.ServiceUnavailable(c, "Advisory is not configured", "ADVISORY_UNAVAILABLE")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), analysisTimeout)
	defer cancel()

	analysis, err := h.analyzer.Analyze(ctx, report)
	if err != nil {
		response.ServiceUnavailable(c, "Advisory is temporarily unavailable", "ADVISORY_UNAVAILABLE")
		return
	}

	response.Success(c, AnalysisResponse{Analysis: analysis})
}
