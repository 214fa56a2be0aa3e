package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-quality-api/internal/models"
	appErrors "github.com/noah-isme/academic-quality-api/pkg/errors"
)

type decoded struct {
	StatusCode int                    `json:"statusCode"`
	Message    string                 `json:"message"`
	Data       interface{}            `json:"data"`
	Metadata   map[string]interface{} `json:"metadata"`
	Error      *appErrors.Error       `json:"error"`
}

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

func TestJSONWithPagination(t *testing.T) {
	c, rec := newContext()

	JSON(c, http.StatusOK, []string{"a"}, models.NewPagination(1, 20, 1), map[string]interface{}{"cache_hit": true})

	var body decoded
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusOK, body.StatusCode)
	assert.Equal(t, "OK", body.Message)
	assert.Equal(t, true, body.Metadata["cache_hit"])
	pagination := body.Metadata["pagination"].(map[string]interface{})
	assert.EqualValues(t, 1, pagination["total_count"])
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestErrorEnvelope(t *testing.T) {
	c, rec := newContext()

	Error(c, appErrors.Clone(appErrors.ErrNotFound, "course not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body decoded
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "course not found", body.Message)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Nil(t, body.Data)
}

func TestErrorUnknownIsInternal(t *testing.T) {
	c, rec := newContext()

	Error(c, errors.New("db down"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Len(t, c.Errors, 1)
}
