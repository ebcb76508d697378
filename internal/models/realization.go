package models

import "time"

// Realization represents a portfolio entry shown on the public site.
type Realization struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Title       string `gorm:"type:text;not null"` // Display title.
	Description string `gorm:"type:text;not null"` // Display description.

	ImageURL  string `gorm:"column:image_url;type:text;not null"` // Primary image URL.
	ImageURL2 string `gorm:"column:image_url_2;type:text"`        // Optional second image URL.
	ImageURL3 string `gorm:"column:image_url_3;type:text"`        // Optional third image URL.
	ImageURL4 string `gorm:"column:image_url_4;type:text"`        // Optional fourth image URL.

	Category string `gorm:"type:text"` // Optional category label.

	Published bool `gorm:"not null;default:false"` // Visible on the public site when true.

	// OrderPosition is a sparse manual rank. NULL means "never explicitly
	// ordered"; such rows sort after all ranked rows by creation time.
	OrderPosition *int `gorm:"type:bigint;index"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
