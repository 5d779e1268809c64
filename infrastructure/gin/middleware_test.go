package gin_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	infragin "github.com/Arhamsiaf65/CityInsights/infrastructure/gin"
	"github.com/Arhamsiaf65/CityInsights/infrastructure/logger"
	ginpkg "github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *ginpkg.Engine {
	t.Helper()

	ginpkg.SetMode(ginpkg.TestMode)
	router := ginpkg.New()
	router.Use(infragin.RequestIDLoggerMiddleware(logger.NewNop()))
	router.GET("/test", func(c *ginpkg.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})
	return router
}

func serve(router http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, http.NoBody)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRequestIDLoggerMiddleware_GeneratesID(t *testing.T) {
	t.Parallel()

	w := serve(newTestRouter(t), http.MethodGet, "/test", nil)

	id := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, id)
	assert.Equal(t, id, w.Body.String())
}

func TestRequestIDLoggerMiddleware_PreservesInboundID(t *testing.T) {
	t.Parallel()

	w := serve(newTestRouter(t), http.MethodGet, "/test", map[string]string{"X-Request-ID": "upstream-abc"})

	assert.Equal(t, "upstream-abc", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "upstream-abc", w.Body.String())
}

func TestRequestIDLoggerMiddleware_RejectsOversizedID(t *testing.T) {
	t.Parallel()

	oversized := strings.Repeat("x", 200)
	w := serve(newTestRouter(t), http.MethodGet, "/test", map[string]string{"X-Request-ID": oversized})

	got := w.Header().Get("X-Request-ID")
	assert.NotEqual(t, oversized, got)
	assert.NotEmpty(t, got)
}

func TestCORSMiddleware(t *testing.T) {
	t.Parallel()

	ginpkg.SetMode(ginpkg.TestMode)
	router := ginpkg.New()
	router.Use(infragin.CORSMiddleware(infragin.CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"https://cityinsight.test"},
	}))
	router.GET("/x", func(c *ginpkg.Context) { c.Status(http.StatusOK) })
	router.OPTIONS("/x", func(c *ginpkg.Context) { c.Status(http.StatusOK) })

	allowed := serve(router, http.MethodGet, "/x", map[string]string{"Origin": "https://cityinsight.test"})
	assert.Equal(t, "https://cityinsight.test", allowed.Header().Get("Access-Control-Allow-Origin"))

	denied := serve(router, http.MethodGet, "/x", map[string]string{"Origin": "https://evil.test"})
	assert.Empty(t, denied.Header().Get("Access-Control-Allow-Origin"))

	preflight := serve(router, http.MethodOptions, "/x", map[string]string{"Origin": "https://cityinsight.test"})
	assert.Equal(t, http.StatusNoContent, preflight.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Parallel()

	ginpkg.SetMode(ginpkg.TestMode)
	router := ginpkg.New()
	router.Use(infragin.RecoveryMiddleware(logger.NewNop()))
	router.GET("/panic", func(*ginpkg.Context) { panic("boom") })

	w := serve(router, http.MethodGet, "/panic", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_ERROR", body["code"])
}

func TestBuilder_HealthReflectsChecks(t *testing.T) {
	t.Parallel()

	server := infragin.NewServerBuilder("city-insight", 0).
		WithLogger(logger.NewNop()).
		WithDatabaseHealthCheck(func() error { return nil }).
		WithRedisHealthCheck(func() error { return errors.New("down") }).
		Build()

	w := serve(server.Router(), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp infragin.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, infragin.HealthStatusDegraded, resp.Status)
	assert.Equal(t, infragin.HealthStatusHealthy, resp.Checks["database"].Status)
	assert.Equal(t, infragin.HealthStatusDegraded, resp.Checks["redis"].Status)

	unhealthy := infragin.NewServerBuilder("city-insight", 0).
		WithDatabaseHealthCheck(func() error { return errors.New("down") }).
		Build()
	w = serve(unhealthy.Router(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
