package api

import (
	"context"                       // Context for Redis operations
	"errors"                        // Sentinel error matching
	"net/http"                      // HTTP status codes
	"rate_anything/internal/domain" // Importing domain models
	"rate_anything/internal/utils"  // Utility functions
	"strconv"                       // String conversion
	"time"                          // Time durations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library

	"github.com/sirupsen/logrus" // Logging library
)

// AddReviewRequest represents a review submission
type AddReviewRequest struct {
	UserID      uint     `json:"user_id"`                               // Owning user, checked by hand so the error names the field
	Item        string   `json:"item" binding:"required"`               // Rated subject
	Rating      int      `json:"rating" binding:"required,min=1,max=5"` // Score, 1-5
	Description string   `json:"description"`                           // Free-text body
	Lat         *float64 `json:"lat"`                                   // Latitude; pointer so an explicit 0 is not "missing"
	Lng         *float64 `json:"lng"`                                   // Longitude; pointer so an explicit 0 is not "missing"
}

// ReviewResponse is a review joined with its owner's username
type ReviewResponse struct {
	ID          uint    `json:"id"`          // Review ID
	UserID      uint    `json:"user_id"`     // Owning user ID
	Item        string  `json:"item"`        // Rated subject
	Rating      int     `json:"rating"`      // Score
	Description string  `json:"description"` // Free-text body
	Lat         float64 `json:"lat"`         // Latitude
	Lng         float64 `json:"lng"`         // Longitude
	Username    string  `json:"username"`    // Owner's display name
}

// errReviewNotOwned marks a delete that matched no review owned by the caller.
// Whether the review is missing or owned by someone else is deliberately not
// distinguished.
var errReviewNotOwned = errors.New("review not found or not owned")

// AddReviewHandler persists a new review for the given user
func AddReviewHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddReviewRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Check if user_id is provided (ids start at 1, so zero means absent)
		if req.UserID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
			return
		}
		// Check if lat and lng are provided; a pointer to zero passes
		if req.Lat == nil || req.Lng == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Coordinates (lat, lng) are required"})
			return
		}
		// Build the review row
		review := domain.Review{
			UserID:      req.UserID,      // Owning user
			Item:        req.Item,        // Rated subject
			Rating:      req.Rating,      // Score
			Description: req.Description, // Free-text body
			Lat:         *req.Lat,        // Latitude
			Lng:         *req.Lng,        // Longitude
		}
		// Attempt to create the review in the database
		if err := db.Create(&review).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": req.UserID,  // Owning user ID
				"item":    req.Item,    // Rated subject
				"error":   err.Error(), // Error message
			}).Error("Failed to add review") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add review"})
			return
		}
		// Invalidate cached listings now that a new review exists
		utils.InvalidateReviewCaches(context.Background(), rdb, req.UserID)
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "Review added successfully!", "review_id": review.ID})
	}
}

// DeleteReviewHandler deletes a review, but only for its owning user
func DeleteReviewHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User authentication required."})
			return
		}
		// Parse the review id from the path
		reviewID, err := strconv.Atoi(c.Param("id"))
		if err != nil || reviewID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
			return
		}
		// Ownership check and delete run in one transaction so a failed
		// delete leaves the row untouched
		err = db.Transaction(func(tx *gorm.DB) error {
			var review domain.Review // Review row to delete
			// A review qualifies only when both id and owner match
			if err := tx.Where("id = ? AND user_id = ?", reviewID, userID).First(&review).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errReviewNotOwned // Missing and foreign reviews look the same
				}
				return err // Return error to rollback
			}
			// Proceed to delete the review
			if err := tx.Delete(&review).Error; err != nil {
				return err // Return error to rollback
			}
			return nil // Commit transaction
		})
		// Missing or foreign review: one conflated forbidden response
		if errors.Is(err, errReviewNotOwned) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Review not found or unauthorized to delete."})
			return
		}
		// Handle unexpected storage failure
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"review_id": reviewID,    // Review ID
				"user_id":   userID,      // Requesting user ID
				"error":     err.Error(), // Error message
			}).Error("Failed to delete review") // Log delete failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
			return
		}
		// Log successful deletion
		logrus.WithFields(logrus.Fields{
			"review_id": reviewID,                        // Review ID
			"user_id":   userID,                          // Requesting user ID
			"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Review deleted") // Log review deletion
		// Invalidate cached listings for this owner
		utils.InvalidateReviewCaches(context.Background(), rdb, userID.(uint))
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully!"})
	}
}

// ListReviewsHandler returns every review joined with its owner's username
func ListReviewsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		var reviews []ReviewResponse
		// Try the cache first; any cache error just falls through to the DB
		found, err := utils.GetCache(ctx, rdb, utils.AllReviewsCacheKey, &reviews)
		if err == nil && found {
			c.JSON(http.StatusOK, reviews) // Return cached listing
			return
		}
		reviews = make([]ReviewResponse, 0) // Empty listing serializes as [], not null
		// Join each review with its owner's username; ordered by id, which is
		// a store-defined order with no semantic meaning
		if err := db.Table("reviews").
			Select("reviews.id, reviews.user_id, reviews.item, reviews.rating, reviews.description, reviews.lat, reviews.lng, users.username").
			Joins("JOIN users ON users.id = reviews.user_id").
			Order("reviews.id").
			Scan(&reviews).Error; err != nil {
			// If fetching fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}
		// Cache the listing for 60 seconds
		_ = utils.SetCache(ctx, rdb, utils.AllReviewsCacheKey, reviews, 60*time.Second)
		c.JSON(http.StatusOK, reviews) // Return the listing
	}
}

// ListReviewsByUserHandler returns one user's reviews joined with the username
func ListReviewsByUserHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Parse the owner id from the path
		ownerID, err := strconv.Atoi(c.Param("id"))
		if err != nil || ownerID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}
		ctx := context.Background()                          // Context for Redis operations
		cacheKey := utils.UserReviewsCacheKey(uint(ownerID)) // Per-owner cache key
		var reviews []ReviewResponse
		// Try the cache first; any cache error just falls through to the DB
		found, err := utils.GetCache(ctx, rdb, cacheKey, &reviews)
		if err == nil && found {
			c.JSON(http.StatusOK, reviews) // Return cached listing
			return
		}
		reviews = make([]ReviewResponse, 0) // Empty listing serializes as [], not null
		// Same join as the full listing, filtered to one owner
		if err := db.Table("reviews").
			Select("reviews.id, reviews.user_id, reviews.item, reviews.rating, reviews.description, reviews.lat, reviews.lng, users.username").
			Joins("JOIN users ON users.id = reviews.user_id").
			Where("reviews.user_id = ?", ownerID).
			Order("reviews.id").
			Scan(&reviews).Error; err != nil {
			// If fetching fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}
		// Cache the listing for 60 seconds
		_ = utils.SetCache(ctx, rdb, cacheKey, reviews, 60*time.Second)
		c.JSON(http.StatusOK, reviews) // Return the listing
	}
}
