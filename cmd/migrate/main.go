package main

import (
	"rate_anything/internal/config" // Custom import path (Config)
	"rate_anything/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Apply the schema against the configured MySQL database
	db.Migrate(cfg.DSN())
}
