package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Arhamsiaf65/CityInsights/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(t *testing.T, limit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	done := make(chan struct{})
	t.Cleanup(func() { close(done) })

	r := gin.New()
	r.Use(middleware.RateLimiter(limit, time.Minute, done))
	r.POST("/chat", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func send(r *gin.Engine, addr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", http.NoBody)
	req.RemoteAddr = addr
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	r := newLimitedRouter(t, 2)

	for i := range 2 {
		assert.Equal(t, http.StatusOK, send(r, "1.2.3.4:1234").Code, "request %d", i)
	}

	w := send(r, "1.2.3.4:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimiter_DifferentIPsIndependent(t *testing.T) {
	r := newLimitedRouter(t, 1)

	assert.Equal(t, http.StatusOK, send(r, "1.1.1.1:1234").Code)
	assert.Equal(t, http.StatusOK, send(r, "2.2.2.2:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, send(r, "1.1.1.1:1234").Code)
}

func TestRateLimiter_Disabled(t *testing.T) {
	r := newLimitedRouter(t, 0)

	for range 5 {
		assert.Equal(t, http.StatusOK, send(r, "1.1.1.1:1234").Code)
	}
}
