package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestSuccess(t *testing.T) {
	c, w := testContext()

	Success(c, gin.H{"hello": "world"})

	require.Equal(t, 200, w.Code)
	var body SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "success", body.Status)
}

func TestPaginated(t *testing.T) {
	c, w := testContext()

	Paginated(c, []string{"a", "b"}, 25, 10, 2)

	require.Equal(t, 200, w.Code)
	var body PaginatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, int64(25), body.Total)
	require.Equal(t, 10, body.Limit)
	require.Equal(t, 2, body.Page)
}

func TestErrorWithCode(t *testing.T) {
	c, w := testContext()

	NotFound(c, "Crime report not found", "REPORT_NOT_FOUND")

	require.Equal(t, 404, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Crime report not found", body.Error)
	require.Equal(t, "REPORT_NOT_FOUND", body.Code)
}

func TestErrorWithoutCode(t *testing.T) {
	c, w := testContext()

	BadRequest(c, "sort must be 'newest' or 'score'")

	require.Equal(t, 400, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Empty(t, body.Code)
}
