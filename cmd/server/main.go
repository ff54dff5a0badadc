package main

import (
	"context"                           // context package is needed for Redis operations
	"log"                               // log package is needed for logging
	"rate_anything/internal/api"        // Custom package for API handlers
	"rate_anything/internal/config"     // Custom package for configuration
	"rate_anything/internal/middleware" // Custom package for middleware

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Cross-origin access on /api is limited to the configured origin
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigin))

	// Plumbing routes
	r.GET("/", api.HelloHandler())           // Hello world endpoint
	r.GET("/test-db", api.TestDBHandler(db)) // Database connectivity probe

	// Auth routes
	r.POST("/api/signup", api.SignupHandler(db))              // Registration endpoint
	r.POST("/api/login", api.LoginHandler(db, cfg.SecretKey)) // Login endpoint

	// Review routes
	r.POST("/api/reviews", api.AddReviewHandler(db, redisClient))                 // Submit review endpoint
	r.GET("/api/reviews", api.ListReviewsHandler(db, redisClient))                // List all reviews endpoint
	r.GET("/api/reviews/user/:id", api.ListReviewsByUserHandler(db, redisClient)) // List reviews by user endpoint
	// Deletion requires a resolved identity (Bearer token or User-Id header)
	r.DELETE("/api/reviews/:id", middleware.IdentityMiddleware(cfg.SecretKey), api.DeleteReviewHandler(db, redisClient))

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
