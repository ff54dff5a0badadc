package domain

// User Model
type User struct {
	ID       uint     `gorm:"primaryKey"`                                    // Primary key
	Username string   `gorm:"unique;not null"`                               // Unique username, stored as submitted (no normalization)
	Password string   `gorm:"not null"`                                      // Bcrypt hash, never the plaintext
	Reviews  []Review `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"` // Reviews owned by this user
}
