package advisory

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crimewatch/crimewatch-api/internal/features/reports"
	apperrors "github.com/crimewatch/crimewatch-api/pkg/errors"
)

type stubReports struct {
	report *reports.CrimeReport
}

func (s *stubReports) GetReportByID(_ context.Context, _ primitive.ObjectID) (*reports.CrimeReport, error) {
	if s.report == nil {
		return nil, apperrors.ErrNotFound
	}
	return s.report, nil
}

type stubAnalyzer struct {
	result string
	err    error
	delay  time.Duration
}

func (s *stubAnalyzer) Analyze(ctx context.Context, _ *reports.CrimeReport) (string, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.result, s.err
}

func newTestRouter(repo ReportGetter, analyzer Analyzer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(repo, analyzer)
	r.GET("/reports/:id/analyze", handler.AnalyzeReport)
	return r
}

func TestAnalyzeReport_ReturnsOpaqueText(t *testing.T) {
	repo := &stubReports{report: &reports.CrimeReport{Description: "stolen bike"}}
	analyzer := &stubAnalyzer{result: "confidence 0.2, likely real"}
	r := newTestRouter(repo, analyzer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports/"+primitive.NewObjectID().Hex()+"/analyze", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	require.Equal(t, "confidence 0.2, likely real", data["analysis"])
}

func TestAnalyzeReport_MissingReport(t *testing.T) {
	r := newTestRouter(&stubReports{}, &stubAnalyzer{result: "unused"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports/"+primitive.NewObjectID().Hex()+"/analyze", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 404, w.Code)
}

func TestAnalyzeReport_InvalidID(t *testing.T) {
	r := newTestRouter(&stubReports{}, &stubAnalyzer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports/not-an-id/analyze", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 400, w.Code)
}

func TestAnalyzeReport_ScorerFailureIsIsolated(t *testing.T) {
	repo := &stubReports{report: &reports.CrimeReport{}}
	analyzer := &stubAnalyzer{err: errors.New("quota exceeded")}
	r := newTestRouter(repo, analyzer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports/"+primitive.NewObjectID().Hex()+"/analyze", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 503, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "ADVISORY_UNAVAILABLE", body["code"])
}

func TestAnalyzeReport_NotConfigured(t *testing.T) {
	repo := &stubReports{report: &reports.CrimeReport{}}
	r := newTestRouter(repo, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports/"+primitive.NewObjectID().Hex()+"/analyze", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 503, w.Code)
}
