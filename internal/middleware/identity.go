package middleware

import (
	"net/http"                     // HTTP status codes
	"rate_anything/internal/utils" // JWT utility functions
	"strconv"                      // String conversion
	"strings"                      // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
)

// IdentityMiddleware resolves the requesting user's identity. A Bearer token
// is verified against the signing secret; without one, the plain User-Id
// header is accepted. Requests with neither are rejected.
func IdentityMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// A Bearer token, when present, must verify
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
			claims, err := utils.ParseJWT(tokenStr, secret)       // Parse and verify the token
			if err != nil {
				// If verification fails, abort with unauthorized status
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
				return
			}
			c.Set("userID", claims.UserID) // Store userID in context
			c.Next()                       // Proceed to the next handler
			return
		}
		// Fall back to the User-Id header
		if raw := c.GetHeader("User-Id"); raw != "" {
			if v, err := strconv.Atoi(raw); err == nil && v > 0 {
				c.Set("userID", uint(v)) // Store userID in context
				c.Next()                 // Proceed to the next handler
				return
			}
		}
		// No usable identity on the request
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User authentication required."})
	}
}
