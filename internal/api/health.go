package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// HelloHandler responds with a plain-text greeting
func HelloHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "Hello, World!")
	}
}

// TestDBHandler probes the database connection with a trivial query
func TestDBHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var one int // Result of the probe query
		if err := db.Raw("SELECT 1").Scan(&one).Error; err != nil {
			// Report the failure without leaking connection details
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database is not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Database is connected!"})
	}
}
