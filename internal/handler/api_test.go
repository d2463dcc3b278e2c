package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"baselines/internal/config"
	"baselines/internal/models"
	"baselines/internal/service"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	logger := zaptest.NewLogger(t)

	clf, err := service.NewClassifier(config.Default(),
		[]string{
			"du bist ein idiot",
			"so ein dummer idiot",
			"halt die klappe du idiot",
			"schönes wetter heute",
			"die sonne scheint heute",
			"wetter und sonne am see",
		},
		[]string{"OFFENSE", "OFFENSE", "OFFENSE", "OTHER", "OTHER", "OTHER"},
		logger)
	require.NoError(t, err)

	r := gin.New()
	NewHandler(clf, logger).RegisterRoutes(r)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestClassifySingle(t *testing.T) {
	r := newRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/classify/single", models.ClassifyRequest{Text: "was für ein idiot"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ClassifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "was für ein idiot", resp.Text)
	assert.Equal(t, "OFFENSE", resp.Category)
	assert.True(t, resp.IsOffensive)
}

func TestClassifySingleBadRequest(t *testing.T) {
	r := newRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/classify/single", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/classify/single", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClassifyBatch(t *testing.T) {
	r := newRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/classify/batch", models.BatchClassifyRequest{
		Messages: []models.BatchMessage{
			{ID: 1, Text: "heute scheint die sonne"},
			{ID: 2, Text: "du dummer idiot"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.BatchClassifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "OTHER", resp.Results[0].Category)
	assert.Equal(t, int64(2), resp.Results[1].ID)
	assert.Equal(t, "OFFENSE", resp.Results[1].Category)
}

func TestClassifyBatchValidation(t *testing.T) {
	r := newRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/classify/batch", models.BatchClassifyRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/classify/batch", models.BatchClassifyRequest{
		Messages: []models.BatchMessage{{ID: 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestModelInfoAndHealth(t *testing.T) {
	r := newRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/model", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var info models.ModelInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, models.BaselineSVM, info.Baseline)
	assert.Equal(t, models.Binary, info.LabelMode)
	assert.Equal(t, []string{"OFFENSE", "OTHER"}, info.Labels)
	assert.Equal(t, 6, info.TrainingSize)

	w = do(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"baselines","model":"svm"}`, w.Body.String())
}
