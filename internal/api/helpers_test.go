package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rate_anything/internal/api"
	"rate_anything/internal/domain"
	"rate_anything/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// setupRouter builds the full route table over an in-memory SQLite database.
// Redis is pointed at a closed port: every cache call fails fast and the
// handlers treat that as a miss.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // in-memory sqlite exists per connection
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Review{}))

	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})

	r := gin.New()
	r.GET("/", api.HelloHandler())
	r.GET("/test-db", api.TestDBHandler(db))
	r.POST("/api/signup", api.SignupHandler(db))
	r.POST("/api/login", api.LoginHandler(db, testSecret))
	r.POST("/api/reviews", api.AddReviewHandler(db, rdb))
	r.GET("/api/reviews", api.ListReviewsHandler(db, rdb))
	r.GET("/api/reviews/user/:id", api.ListReviewsByUserHandler(db, rdb))
	r.DELETE("/api/reviews/:id", middleware.IdentityMiddleware(testSecret), api.DeleteReviewHandler(db, rdb))
	return r, db
}

// doJSON performs a request with an optional JSON body and extra headers
func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// signupAndLogin registers a user and returns its id and token
func signupAndLogin(t *testing.T, r *gin.Engine, username, password string) (uint, string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/signup", gin.H{"username": username, "password": password}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/login", gin.H{"username": username, "password": password}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp api.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.UserID, resp.Token
}

// addReview submits a review and returns its id
func addReview(t *testing.T, r *gin.Engine, userID uint, item string, lat, lng float64) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/reviews", gin.H{
		"user_id":     userID,
		"item":        item,
		"rating":      4,
		"description": "worth a detour",
		"lat":         lat,
		"lng":         lng,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		ReviewID uint `json:"review_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ReviewID
}
