package models

import "time"

// SiteText stores an editable text override keyed by a stable identifier.
// A missing row means the site falls back to its compiled-in default.
type SiteText struct {
	Key         string `gorm:"type:varchar(255);primaryKey"` // Override key, e.g. "hero_lead".
	Value       string `gorm:"type:text;not null"`           // Stored value, may be empty.
	Description string `gorm:"type:text"`                    // Optional human label.

	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;default:CURRENT_TIMESTAMP"` // Last update timestamp.
	UpdatedBy string    `gorm:"type:text"`                                         // Username of the last editor.
}
