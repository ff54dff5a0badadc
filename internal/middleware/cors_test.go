package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"rate_anything/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const allowedOrigin = "https://rateanythingclt.com"

func corsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CORSMiddleware(allowedOrigin))
	r.GET("/api/reviews", func(c *gin.Context) {
		c.JSON(http.StatusOK, []string{})
	})
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello, World!")
	})
	return r
}

func TestCORSAllowedOrigin(t *testing.T) {
	r := corsRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	req.Header.Set("Origin", allowedOrigin)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, allowedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSForeignOrigin(t *testing.T) {
	r := corsRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// Requests from any other origin are refused outright
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	r := corsRouter()
	req := httptest.NewRequest(http.MethodOptions, "/api/reviews", nil)
	req.Header.Set("Origin", allowedOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, allowedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSSkipsNonAPIRoutes(t *testing.T) {
	r := corsRouter()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// The policy covers /api only; plain routes stay reachable
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSNoOriginHeader(t *testing.T) {
	r := corsRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/reviews", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// Same-origin and non-browser clients carry no Origin header
	assert.Equal(t, http.StatusOK, w.Code)
}
