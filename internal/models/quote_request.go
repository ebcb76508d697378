package models

import (
	"time"

	"gorm.io/datatypes"
)

// Quote request statuses.
const (
	// QuoteStatusNew marks a freshly submitted request.
	QuoteStatusNew = "new"
	// QuoteStatusProcessing marks a request being handled.
	QuoteStatusProcessing = "processing"
	// QuoteStatusDone marks a completed request.
	QuoteStatusDone = "done"
)

// QuoteRequest stores a contact form submission asking for a print quote.
type QuoteRequest struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name    string `gorm:"type:text;not null"` // Contact name.
	Email   string `gorm:"type:text;not null"` // Reply address.
	Phone   string `gorm:"type:text"`          // Optional phone number.
	Message string `gorm:"type:text;not null"` // Free-form request body.

	FileURL  string `gorm:"type:text"` // Optional uploaded model file URL.
	FileName string `gorm:"type:text"` // Original file name of the upload.

	Status string `gorm:"type:text;not null;default:'new';index"` // Processing status.

	Metadata datatypes.JSON `gorm:"type:jsonb"` // Extra submission context (user agent, locale).

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
