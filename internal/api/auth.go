package api

import (
	"net/http"                      // HTTP status codes
	"rate_anything/internal/domain" // Importing domain models
	"rate_anything/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Request and Response structs
type SignupRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for a successful login
type LoginResponse struct {
	Message string `json:"message"` // Human-readable outcome
	UserID  uint   `json:"user_id"` // Identifier of the authenticated user
	Token   string `json:"token"`   // Signed bearer token, valid 24h
}

// SignupHandler registers a new user with a bcrypt-hashed password
func SignupHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Hash the password; the plaintext is never persisted
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		// Username is stored exactly as submitted
		user := domain.User{Username: req.Username, Password: string(hash)}
		// Attempt to create the user; the unique index rejects duplicates
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
			return
		}
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully!"})
	}
}

// LoginHandler authenticates a user and returns a signed token with the user id
func LoginHandler(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
			// Unknown username gets the same response as a wrong password
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, secret)
		if err != nil {
			// If token generation fails, return internal server error
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // User ID
				"error":   err.Error(), // Error message
			}).Error("Token generation failed") // Log token failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the user id and token in the response
		c.JSON(http.StatusOK, LoginResponse{
			Message: "Login successful!", // Outcome message
			UserID:  user.ID,             // Authenticated user id
			Token:   token,               // Signed bearer token
		})
	}
}
