package models

import "time"

// Review represents a customer review curated through the admin dashboard.
type Review struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	AuthorName  string `gorm:"type:text;not null"` // Reviewer display name.
	Rating      int    `gorm:"not null;default:5"` // Star rating, 1 to 5.
	ReviewText  string `gorm:"type:text;not null"` // Review body.
	ReviewMonth *int   `gorm:"type:bigint"`        // Optional month (1-12).
	ReviewYear  *int   `gorm:"type:bigint"`        // Optional year.

	IsPublished bool `gorm:"not null;default:false"` // Visible on the public site when true.

	// DisplayOrder ranks published reviews. Same sparse semantics as
	// Realization.OrderPosition: NULL sorts last by creation time.
	DisplayOrder *int `gorm:"type:bigint;index"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
