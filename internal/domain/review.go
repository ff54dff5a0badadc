package domain

// Review Model
type Review struct {
	ID          uint    `gorm:"primaryKey"`     // Primary key
	UserID      uint    `gorm:"not null;index"` // Foreign key to the owning User
	Item        string  `gorm:"not null"`       // Name of the rated subject
	Rating      int     `gorm:"not null"`       // Score, 1-5
	Description string  // Free-text review body
	Lat         float64 `gorm:"not null"` // Latitude of the rated item
	Lng         float64 `gorm:"not null"` // Longitude of the rated item
	CreatedAt   int64   `gorm:"autoCreateTime:milli"` // Timestamp of creation in milliseconds
}
