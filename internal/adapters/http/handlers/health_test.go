package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-jsonl-service/internal/mocks"
	"github.com/jsamuelsen/quote-jsonl-service/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewBuildInfo(t *testing.T) {
	bi := NewBuildInfo("1.0.0", "abc123", "2026-10-19T10:00:00Z")

	assert.Equal(t, "1.0.0", bi.Version)
	assert.Equal(t, "abc123", bi.Commit)
	assert.Equal(t, "2026-10-19T10:00:00Z", bi.BuildTime)
	assert.Equal(t, runtime.Version(), bi.GoVersion)
}

func TestNewHealthHandler_DefaultGatherer(t *testing.T) {
	handler := NewHealthHandler(mocks.NewMockHealthRegistry(t), BuildInfo{}, nil)

	assert.Equal(t, prometheus.DefaultGatherer, handler.gatherer)
}

func TestHealthHandler_Liveness(t *testing.T) {
	handler := NewHealthHandler(mocks.NewMockHealthRegistry(t), BuildInfo{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/-/live", http.NoBody)

	handler.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	checkedAt := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		result     *ports.HealthResult
		wantStatus int
	}{
		{
			name: "healthy",
			result: &ports.HealthResult{
				Status: ports.HealthStatusHealthy,
				Checks: map[string]*ports.CheckResult{
					"quote-service": {Status: ports.HealthStatusHealthy, Duration: 5 * time.Millisecond},
				},
				Timestamp: checkedAt,
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "quote api down",
			result: &ports.HealthResult{
				Status: ports.HealthStatusUnhealthy,
				Checks: map[string]*ports.CheckResult{
					"quote-service": {Status: ports.HealthStatusUnhealthy, Message: "quote API returned status 503"},
				},
				Timestamp: checkedAt,
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "no checks registered",
			result:     &ports.HealthResult{Status: ports.HealthStatusHealthy, Timestamp: checkedAt},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := mocks.NewMockHealthRegistry(t)
			registry.EXPECT().CheckAll(mock.Anything).Return(tt.result).Once()

			handler := NewHealthHandler(registry, BuildInfo{}, nil)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/-/ready", http.NoBody)

			handler.Readiness(c)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp readinessResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, string(tt.result.Status), resp.Status)
			assert.Len(t, resp.Checks, len(tt.result.Checks))
			assert.True(t, checkedAt.Equal(resp.Timestamp))
		})
	}
}

func TestHealthHandler_BuildInfoHandler(t *testing.T) {
	bi := NewBuildInfo("2.1.0", "def456", "2026-10-19T10:00:00Z")
	handler := NewHealthHandler(mocks.NewMockHealthRegistry(t), bi, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/-/build", http.NoBody)

	handler.BuildInfoHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp BuildInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, bi, resp)
}

func TestHealthHandler_RegisterHealthRoutesOnEngine(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "quote_cache_hits_total", Help: "hits"})
	reg.MustRegister(counter)
	counter.Inc()

	registry := mocks.NewMockHealthRegistry(t)
	registry.EXPECT().CheckAll(mock.Anything).
		Return(&ports.HealthResult{Status: ports.HealthStatusHealthy}).Once()

	engine := gin.New()
	NewHealthHandler(registry, BuildInfo{Version: "1.0.0"}, reg).RegisterHealthRoutesOnEngine(engine)

	for _, path := range []string{"/-/live", "/-/ready", "/-/build", "/-/metrics"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
		assert.Equal(t, http.StatusOK, w.Code, path)

		if path == "/-/metrics" {
			assert.Contains(t, w.Body.String(), "quote_cache_hits_total 1")
		}
	}
}
