package reports

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crimewatch/crimewatch-api/internal/features/auth"
	"github.com/crimewatch/crimewatch-api/internal/pkg/response"
	apperrors "github.com/crimewatch/crimewatch-api/pkg/errors"
)

// Handler handles crime report HTTP requests
type Handler struct {
	repo *Repository
}

// NewHandler creates a new report handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateReport godoc
// @Summary Submit a crime report
// @Description Submit a new crime report with evidence images. Reports start unverified with score 0.
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReportRequest true "Report payload"
// @Success 201 {object} response.SuccessResponse{data=CrimeReport}
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /reports [post]
func (h *Handler) CreateReport(c *gin.Context) {
	currentUser, ok := auth.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_REQUEST")
		return
	}

	report := &CrimeReport{
		UserID:      currentUser.ID,
		Title:       req.Title,
		Description: req.Description,
		Division:    req.Division,
		District:    req.District,
		Images:      req.Images,
		Video:       req.Video,
		CrimeTime:   req.CrimeTime,
	}

	if err := h.repo.CreateReport(c.Request.Context(), report); err != nil {
		response.InternalServerError(c, "Failed to submit report", "REPORT_FAILED")
		return
	}

	response.Created(c, report)
}

// GetReport godoc
// @Summary Get a crime report
// @Tags reports
// @Produce json
// @Param id path string true "Crime report ID"
// @Success 200 {object} response.SuccessResponse{data=CrimeReport}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /reports/{id} [get]
func (h *Handler) GetReport(c *gin.Context) {
	reportID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid crime report ID format", "INVALID_ID")
		return
	}

	report, err := h.repo.GetReportByID(c.Request.Context(), reportID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Crime report not found", "REPORT_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to fetch report", "FETCH_FAILED")
		return
	}

	response.Success(c, report)
}

// ListReports godoc
// @Summary List crime reports
// @Description List reports with optional area filters. Sorting by score surfaces community-corroborated reports first.
// @Tags reports
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 20, max 50)"
// @Param sort query string false "Sort order: newest or score"
// @Param division query string false "Division filter"
// @Param district query string false "District filter"
// @Param verified query bool false "Only (un)verified reports"
// @Success 200 {object} response.PaginatedResponse{data=[]CrimeReport}
// @Failure 400 {object} response.ErrorResponse
// @Router /reports [get]
func (h *Handler) ListReports(c *gin.Context) {
	var query ReportListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_QUERY")
		return
	}

	if query.Sort != SortNewest && query.Sort != SortScore {
		response.BadRequest(c, "sort must be 'newest' or 'score'", "INVALID_QUERY")
		return
	}

	results, total, err := h.repo.ListReports(c.Request.Context(), &query)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch reports", "FETCH_FAILED")
		return
	}

	response.Paginated(c, results, total, query.Limit, query.Page)
}

// GetVerification godoc
// @Summary Get a report's verification status
// @Description Read the derived trust state. These fields are written only by the verification engine.
// @Tags reports
// @Produce json
// @Param id path string true "Crime report ID"
// @Success 200 {object} response.SuccessResponse{data=TrustState}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /reports/{id}/verification [get]
func (h *Handler) GetVerification(c *gin.Context) {
	reportID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid crime report ID format", "INVALID_ID")
		return
	}

	trust, err := h.repo.GetTrust(c.Request.Context(), reportID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Crime report not found", "REPORT_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to read verification state", "TRUST_READ_FAILED")
		return
	}

	response.Success(c, trust)
}
