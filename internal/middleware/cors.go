package middleware

import (
	"strings" // Path prefix check
	"time"    // Preflight cache duration

	"github.com/gin-contrib/cors" // CORS middleware for gin
	"github.com/gin-gonic/gin"    // Gin web framework
)

// CORSMiddleware restricts cross-origin requests on /api routes to the single
// allowed origin. Registered on the engine so preflight OPTIONS requests are
// answered even though no OPTIONS routes exist.
func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	// Build the CORS handler once; only the configured origin is granted
	handler := cors.New(cors.Config{
		AllowOrigins: []string{allowedOrigin},                            // Single allowed origin
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},       // Methods the API serves
		AllowHeaders: []string{"Content-Type", "Authorization", "User-Id"}, // Headers the frontend sends
		MaxAge:       12 * time.Hour,                                     // Preflight cache duration
	})
	return func(c *gin.Context) {
		// Cross-origin policy only covers the API surface
		if !strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Next()
			return
		}
		handler(c) // Delegate to the CORS handler
	}
}
