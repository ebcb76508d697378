package sitetext

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/atelier3d/site-backend/internal/models"
)

// Resolve returns the display value for an override key. The stored value
// wins when its trimmed form is non-empty; otherwise defaultValue is
// returned. The stored value itself is returned untrimmed. Query failures
// fail open to defaultValue; Resolve never returns an error.
func Resolve(ctx context.Context, conn *gorm.DB, key, defaultValue string) string {
	var row models.SiteText
	errFind := conn.WithContext(ctx).
		Select("value").
		Where("key = ?", key).
		First(&row).Error
	if errFind != nil {
		if !errors.Is(errFind, gorm.ErrRecordNotFound) {
			log.WithError(errFind).Debugf("sitetext: resolve %s failed, using default", key)
		}
		return defaultValue
	}
	if strings.TrimSpace(row.Value) == "" {
		return defaultValue
	}
	return row.Value
}

// ResolveMany resolves a set of keys in one query. Each key falls back to
// its entry in defaults under the same rules as Resolve.
func ResolveMany(ctx context.Context, conn *gorm.DB, defaults map[string]string) map[string]string {
	out := make(map[string]string, len(defaults))
	for key, def := range defaults {
		out[key] = def
	}
	if len(defaults) == 0 {
		return out
	}

	keys := make([]string, 0, len(defaults))
	for key := range defaults {
		keys = append(keys, key)
	}

	var rows []models.SiteText
	if errFind := conn.WithContext(ctx).
		Select("key", "value").
		Where("key IN ?", keys).
		Find(&rows).Error; errFind != nil {
		log.WithError(errFind).Debug("sitetext: bulk resolve failed, using defaults")
		return out
	}

	for _, row := range rows {
		if strings.TrimSpace(row.Value) != "" {
			out[row.Key] = row.Value
		}
	}
	return out
}
