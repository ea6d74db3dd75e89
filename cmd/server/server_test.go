package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/layoff-o-meter/internal/api"
	"github.com/ZanzyTHEbar/layoff-o-meter/internal/config"
	apperrors "github.com/ZanzyTHEbar/layoff-o-meter/internal/errors"
	"github.com/ZanzyTHEbar/layoff-o-meter/internal/monitoring"
	"github.com/ZanzyTHEbar/layoff-o-meter/internal/prediction"
)

const lowRiskProfile = `{
	"age": "30",
	"department": "engineering",
	"jobRole": "Software Engineer",
	"salary": "80000",
	"overtime": "often",
	"performanceRating": "5",
	"yearsAtCompany": "2"
}`

func newTestServices(t testing.TB, overrides map[string]interface{}) *services {
	t.Helper()
	gin.SetMode(gin.TestMode)

	v := viper.New()
	config.SetDefaults(v)
	v.Set("server.mode", "test")
	for k, val := range overrides {
		v.Set(k, val)
	}
	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	svc := newServices(context.Background(), cfg, monitoring.NewLoggerWithWriter(io.Discard, slog.LevelError))
	t.Cleanup(svc.Close)
	return svc
}

func newTestRouter(t testing.TB, overrides map[string]interface{}) (*gin.Engine, *services) {
	t.Helper()
	svc := newTestServices(t, overrides)
	return setupRouter(svc), svc
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	tests := []struct {
		name           string
		method         string
		expectedStatus int
	}{
		{name: "GET /health returns OK status", method: http.MethodGet, expectedStatus: http.StatusOK},
		{name: "POST /health not routed", method: http.MethodPost, expectedStatus: http.StatusNotFound},
		{name: "DELETE /health not routed", method: http.MethodDelete, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, tt.method, "/health", "")
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}

	w := doRequest(r, http.MethodGet, "/health", "")
	var resp api.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "disabled", resp.Redis)
	assert.Equal(t, config.Version, resp.Version)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestPredictEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := doRequest(r, http.MethodPost, "/api/v1/predict", lowRiskProfile)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp api.PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// raw score -48 leaves the confidence within the perturbation band
	assert.GreaterOrEqual(t, resp.Prediction.Confidence, 0)
	assert.LessOrEqual(t, resp.Prediction.Confidence, 7)
	assert.Equal(t, prediction.RiskLow, resp.Prediction.RiskLevel)
	assert.False(t, resp.Prediction.WillBeLayedOff)
	assert.Empty(t, resp.Recommendations)
	assert.Equal(t, w.Header().Get("X-Request-ID"), resp.RequestID)
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestPredictEndpoint_InvalidRequests(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	tests := []struct {
		name           string
		body           string
		contentType    string
		expectedStatus int
	}{
		{name: "malformed JSON", body: `{"age":`, contentType: "application/json", expectedStatus: http.StatusBadRequest},
		{name: "missing fields", body: `{"age": 30}`, contentType: "application/json", expectedStatus: http.StatusBadRequest},
		{name: "non-numeric salary", body: strings.Replace(lowRiskProfile, `"80000"`, `"lots"`, 1), contentType: "application/json", expectedStatus: http.StatusBadRequest},
		{name: "wrong content type", body: lowRiskProfile, contentType: "text/plain", expectedStatus: http.StatusUnsupportedMediaType},
		{name: "oversized body", body: `{"jobRole":"` + strings.Repeat("x", 20*1024) + `"}`, contentType: "application/json", expectedStatus: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/api/v1/predict", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["code"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestPredictEndpoint_RateLimited(t *testing.T) {
	r, svc := newTestRouter(t, map[string]interface{}{
		"rate_limit.ip_limit_per_min": 3,
		"rate_limit.burst_multiplier": 2,
	})

	// in-memory burst is max(3*2, 5)
	for i := 0; i < 6; i++ {
		w := doRequest(r, http.MethodPost, "/api/v1/predict", lowRiskProfile)
		require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}

	w := doRequest(r, http.MethodPost, "/api/v1/predict", lowRiskProfile)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	stats := svc.limiter.GetStats()
	assert.NotEmpty(t, stats)

	// other routes are not limited
	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/api/v1/reference", "").Code)
}

func TestPredictEndpoint_RateLimitDisabled(t *testing.T) {
	r, _ := newTestRouter(t, map[string]interface{}{
		"rate_limit.enabled":          false,
		"rate_limit.ip_limit_per_min": 1,
	})

	for i := 0; i < 10; i++ {
		w := doRequest(r, http.MethodPost, "/api/v1/predict", lowRiskProfile)
		require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRecommendEndpoint_Cached(t *testing.T) {
	r, svc := newTestRouter(t, nil)

	body := `{"willBeLayedOff": true, "confidence": 80, "riskLevel": "High", "factors": [{"name": "Department Risk", "impact": 15, "isPositive": false}]}`

	first := doRequest(r, http.MethodPost, "/api/v1/recommend", body)
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := doRequest(r, http.MethodPost, "/api/v1/recommend", body)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	var resp api.RecommendResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	require.Len(t, resp.Recommendations, 2)
	assert.Equal(t, "Cross-Department Training", resp.Recommendations[0].Title)
	assert.Equal(t, "Immediate Intervention Required", resp.Recommendations[1].Title)

	assert.Equal(t, 1, svc.cache.Size())

	// failures are not cached
	bad := `{"confidence": 500}`
	assert.Equal(t, http.StatusBadRequest, doRequest(r, http.MethodPost, "/api/v1/recommend", bad).Code)
	assert.Equal(t, "MISS", doRequest(r, http.MethodPost, "/api/v1/recommend", bad).Header().Get("X-Cache"))
	assert.Equal(t, 1, svc.cache.Size())
}

func TestReferenceEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := doRequest(r, http.MethodGet, "/api/v1/reference", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.ReferenceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Departments, len(prediction.Departments()))
	assert.Len(t, resp.Factors, 6)
}

func TestMetricsEndpoints(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	require.Equal(t, http.StatusOK, doRequest(r, http.MethodPost, "/api/v1/predict", lowRiskProfile).Code)

	w := doRequest(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Contains(t, stats, "rate_limit")
	assert.Contains(t, stats, "redis")

	w = doRequest(r, http.MethodGet, "/metrics/prometheus", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "layoff_predictions_total")
	assert.Contains(t, w.Body.String(), `layoff_http_requests_total{method="POST",path="/api/v1/predict",status="200"} 1`)

	w = doRequest(r, http.MethodGet, "/cache/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ttl_seconds")
}

func TestSwaggerEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := doRequest(r, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/v1/predict")
	assert.Contains(t, w.Body.String(), config.Version)
}

func TestProfilingEndpoints(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, "/debug/pprof/", "").Code)

	r, _ = newTestRouter(t, map[string]interface{}{"server.enable_profiling": true})
	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/debug/pprof/", "").Code)
	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/debug/pprof/goroutine?debug=1", "").Code)
}

func TestUnknownRoute(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, "/api/v1/unknown", "").Code)
}

func TestNewScorer_Seeded(t *testing.T) {
	p := prediction.EmployeeProfile{Age: 30, Department: prediction.DepartmentSales, AnnualSalary: 50000, Overtime: prediction.OvertimeAlways, PerformanceRating: 3, YearsAtCompany: 5}

	a := newScorer(config.PredictionConfig{Seed: 7})
	b := newScorer(config.PredictionConfig{Seed: 7})
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Score(p), b.Score(p))
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	cfg, level, appErr := loadConfig(write("good.yaml", "log:\n  level: debug\n"))
	require.Nil(t, appErr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, slog.LevelDebug, level)

	tests := []struct {
		name  string
		path  string
		cause string
	}{
		{name: "unknown log level", path: write("level.yaml", "log:\n  level: loud\n"), cause: "log.level"},
		{name: "missing file", path: filepath.Join(dir, "missing.yaml"), cause: "missing.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _, appErr := loadConfig(tt.path)
			require.NotNil(t, appErr)
			assert.Nil(t, cfg)
			assert.Equal(t, "CONFIGURATION_ERROR", appErr.Code)
			assert.Equal(t, apperrors.CategoryConfiguration, appErr.Category)
			assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
			assert.ErrorContains(t, appErr.Unwrap(), tt.cause)
		})
	}
}
