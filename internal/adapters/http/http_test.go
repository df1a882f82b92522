package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-jsonl-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-jsonl-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-jsonl-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-jsonl-service/internal/app"
	"github.com/jsamuelsen/quote-jsonl-service/internal/domain"
	"github.com/jsamuelsen/quote-jsonl-service/internal/mocks"
	"github.com/jsamuelsen/quote-jsonl-service/internal/platform/config"
	"github.com/jsamuelsen/quote-jsonl-service/internal/platform/jsonl"
	"github.com/jsamuelsen/quote-jsonl-service/internal/platform/logging"
	"github.com/jsamuelsen/quote-jsonl-service/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            0,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		RequestTimeout:  3 * time.Second,
		MaxRequestSize:  1 << 20,
	}
}

func testAppConfig() *config.AppConfig {
	return &config.AppConfig{Name: "quote-jsonl-service", Environment: "test", Version: "1.0.0"}
}

// newTestRouter builds the full middleware chain around a mock-backed quote handler.
func newTestRouter(t *testing.T, setupMock func(*mocks.MockQuoteClient)) *gin.Engine {
	t.Helper()

	mockClient := mocks.NewMockQuoteClient(t)
	if setupMock != nil {
		setupMock(mockClient)
	}

	service := app.NewQuoteService(app.QuoteServiceConfig{QuoteClient: mockClient, Logger: discardLogger()})
	health := handlers.NewHealthHandler(ports.NewHealthRegistry(), handlers.NewBuildInfo("1.0.0", "abc123", ""), nil)

	engine := gin.New()
	SetupRouter(engine, NewRouterConfig(testAppConfig(), testServerConfig(), health, handlers.NewQuoteHandler(service, nil)))

	return engine
}

func TestServerNew(t *testing.T) {
	cfg := testServerConfig()
	logger := discardLogger()

	srv := New(cfg, logger)

	require.NotNil(t, srv)
	assert.NotNil(t, srv.Engine())
	assert.Equal(t, cfg, srv.Config())
	assert.Equal(t, logger, srv.logger)
	assert.Equal(t, cfg.WriteTimeout, srv.httpServer.WriteTimeout)
	assert.Equal(t, "127.0.0.1:0", srv.Addr())
}

func TestServerServeShutdown(t *testing.T) {
	srv := New(testServerConfig(), discardLogger())
	srv.Engine().GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve() }()

	time.Sleep(50 * time.Millisecond)

	select {
	case err := <-errCh:
		t.Fatalf("server stopped before shutdown: %v", err)
	default:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-errCh:
		assert.NoError(t, err, "clean shutdown is not an error")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for server to shutdown")
	}
}

func TestServerServe_ListenError(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = taken.Close() })

	cfg := testServerConfig()
	cfg.Port = taken.Addr().(*net.TCPAddr).Port //nolint:forcetypeassert // tcp listener

	err = New(cfg, discardLogger()).Serve()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http server error")
}

func TestMaxBodySizeMiddleware(t *testing.T) {
	cfg := testServerConfig()
	cfg.MaxRequestSize = 100

	srv := New(cfg, discardLogger())
	srv.Engine().POST("/echo", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}

		c.JSON(http.StatusOK, gin.H{"received": len(body)})
	})

	tests := []struct {
		name       string
		size       int
		wantStatus int
	}{
		{"under limit", 50, http.StatusOK},
		{"over limit", 200, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", tt.size)))
			srv.Engine().ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestNewRouterConfig(t *testing.T) {
	appCfg := testAppConfig()
	health := handlers.NewHealthHandler(nil, handlers.BuildInfo{}, nil)

	cfg := NewRouterConfig(appCfg, testServerConfig(), health, nil)

	assert.Equal(t, appCfg, cfg.AppConfig)
	assert.Equal(t, health, cfg.HealthHandler)
	assert.Nil(t, cfg.QuoteHandler)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestSetupRouter_Routes(t *testing.T) {
	engine := newTestRouter(t, nil)

	registered := map[string]bool{}
	for _, r := range engine.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /quote", "GET /quote/ex1", "GET /quote/ex2", "GET /quote/ex3",
		"GET /-/live", "GET /-/ready", "GET /-/build", "GET /-/metrics",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestSetupRouter_NilHandlers(t *testing.T) {
	engine := gin.New()

	require.NotPanics(t, func() {
		SetupRouter(engine, RouterConfig{AppConfig: testAppConfig()})
	})
	assert.Empty(t, engine.Routes())
}

func TestSetupRouter_QuoteThroughMiddleware(t *testing.T) {
	engine := newTestRouter(t, func(m *mocks.MockQuoteClient) {
		m.EXPECT().ListQuotes(mock.Anything, 10).RunAndReturn(
			func(ctx context.Context, _ int) (*domain.QuoteList, error) {
				assert.Equal(t, "req-abc", middleware.RequestIDFromContext(ctx))

				return &domain.QuoteList{Count: 1, Results: []domain.Quote{{ID: "a1", Author: "X", Content: "hi", Tags: []string{}}}}, nil
			}).Once()
	})

	req := httptest.NewRequest(http.MethodGet, "/quote/ex1", http.NoBody)
	req.Header.Set(middleware.HeaderRequestID, "req-abc")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, jsonl.MediaType, w.Header().Get("Content-Type"))
	assert.Equal(t, "req-abc", w.Header().Get(middleware.HeaderRequestID))
	assert.True(t, strings.HasPrefix(w.Body.String(), `{"_id":"a1","author":"X","content":"hi","tags":[]`))
	assert.Equal(t, 1, strings.Count(w.Body.String(), "\n"))
}

func TestSetupRouter_NotFound(t *testing.T) {
	engine := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quotes", http.NoBody))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeNotFound, resp.Error.Code)

	_, err := uuid.Parse(w.Header().Get(middleware.HeaderRequestID))
	assert.NoError(t, err)
}

func TestSetupRouter_ProbesAreNotLogged(t *testing.T) {
	var buf bytes.Buffer

	prev := logging.FromContext(context.Background())
	logging.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { logging.SetDefault(prev) })

	engine := newTestRouter(t, func(m *mocks.MockQuoteClient) {
		m.EXPECT().ListQuotes(mock.Anything, 10).
			Return(nil, domain.NewUnavailableError("quote-service", "down")).Once()
	})

	for _, path := range []string{"/-/live", "/-/ready", "/quote"} {
		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
	}

	logs := buf.String()
	assert.NotContains(t, logs, `"path":"/-/live"`)
	assert.NotContains(t, logs, `"path":"/-/ready"`)
	assert.Contains(t, logs, `"path":"/quote"`)
	assert.Contains(t, logs, `"status":503`)
}
