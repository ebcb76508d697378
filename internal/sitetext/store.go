package sitetext

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/atelier3d/site-backend/internal/models"
)

// ErrEmptyKey rejects writes without an override key.
var ErrEmptyKey = errors.New("sitetext: empty key")

// Upsert inserts or replaces an override row keyed on its key column.
// The operation is idempotent: repeating it with the same value leaves
// the stored state unchanged.
func Upsert(ctx context.Context, conn *gorm.DB, row models.SiteText) error {
	row.Key = strings.TrimSpace(row.Key)
	if row.Key == "" {
		return ErrEmptyKey
	}
	return conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_at", "updated_by"}),
		}).
		Create(&row).Error
}

// UpsertBatch inserts or replaces several override rows in one statement.
// The dashboard saves the three banner keys together through this.
func UpsertBatch(ctx context.Context, conn *gorm.DB, rows []models.SiteText) error {
	cleaned := make([]models.SiteText, 0, len(rows))
	for _, row := range rows {
		row.Key = strings.TrimSpace(row.Key)
		if row.Key == "" {
			return ErrEmptyKey
		}
		cleaned = append(cleaned, row)
	}
	if len(cleaned) == 0 {
		return nil
	}
	return conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_at", "updated_by"}),
		}).
		Create(&cleaned).Error
}

// List returns all override rows ordered by key.
func List(ctx context.Context, conn *gorm.DB) ([]models.SiteText, error) {
	var rows []models.SiteText
	errFind := conn.WithContext(ctx).Order("key ASC").Find(&rows).Error
	return rows, errFind
}
