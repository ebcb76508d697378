package db

import (
	"fmt"

	"github.com/atelier3d/site-backend/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for all persisted models.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	return conn.AutoMigrate(
		&models.Admin{},
		&models.SiteText{},
		&models.Realization{},
		&models.Review{},
		&models.QuoteRequest{},
	)
}
