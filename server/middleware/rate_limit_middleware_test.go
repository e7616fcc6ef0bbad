package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLimitedRouter(maxRequests int, window time.Duration) *gin.Engine {
	router := gin.New()
	router.Use(RateLimitMiddleware(maxRequests, window))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func doGet(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	router := newLimitedRouter(2, time.Minute)
	assert.Equal(t, http.StatusOK, doGet(router, "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, doGet(router, "10.0.0.1:1000").Code)
	w := doGet(router, "10.0.0.1:1000")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "too many requests")
}

func TestRateLimitPerIP(t *testing.T) {
	router := newLimitedRouter(1, time.Minute)
	assert.Equal(t, http.StatusOK, doGet(router, "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, doGet(router, "10.0.0.1:1000").Code)
	// 其他ip不受影响
	assert.Equal(t, http.StatusOK, doGet(router, "10.0.0.2:1000").Code)
}

func TestRateLimitWindowReset(t *testing.T) {
	router := newLimitedRouter(1, 50*time.Millisecond)
	assert.Equal(t, http.StatusOK, doGet(router, "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, doGet(router, "10.0.0.1:1000").Code)
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, http.StatusOK, doGet(router, "10.0.0.1:1000").Code)
}
