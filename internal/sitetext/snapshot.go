package sitetext

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	"github.com/atelier3d/site-backend/internal/models"
)

// snapshot holds the in-memory copy of all stored overrides.
type snapshot struct {
	updatedAt time.Time
	values    map[string]string
}

// globalSnapshot stores the latest snapshot atomically.
var globalSnapshot atomic.Value // stores snapshot

func init() {
	globalSnapshot.Store(snapshot{values: map[string]string{}})
}

// RefreshSnapshot reloads all overrides from the database into the
// in-memory snapshot. Call at startup and after every admin write;
// otherwise SnapshotValue serves stale or empty data.
func RefreshSnapshot(ctx context.Context, conn *gorm.DB) error {
	if conn == nil {
		return errors.New("sitetext: nil db")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var rows []models.SiteText
	if errFind := conn.WithContext(ctx).
		Select("key", "value", "updated_at").
		Order("key ASC").
		Find(&rows).Error; errFind != nil {
		return errFind
	}

	values := make(map[string]string, len(rows))
	maxUpdatedAt := time.Time{}
	for _, row := range rows {
		key := strings.TrimSpace(row.Key)
		if key == "" {
			continue
		}
		values[key] = row.Value
		if rowUpdatedAt := row.UpdatedAt.UTC(); rowUpdatedAt.After(maxUpdatedAt) {
			maxUpdatedAt = rowUpdatedAt
		}
	}

	globalSnapshot.Store(snapshot{updatedAt: maxUpdatedAt, values: values})
	return nil
}

// SnapshotValue resolves a key against the in-memory snapshot with the
// same fallback rule as Resolve. Intended for hot public reads where a
// per-request query is wasteful.
func SnapshotValue(key, defaultValue string) string {
	snap := loadSnapshot()
	value, ok := snap.values[strings.TrimSpace(key)]
	if !ok || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return value
}

// SnapshotUpdatedAt returns the most recent override update time seen by
// the snapshot.
func SnapshotUpdatedAt() time.Time {
	return loadSnapshot().updatedAt
}

func loadSnapshot() snapshot {
	v := globalSnapshot.Load()
	snap, ok := v.(snapshot)
	if !ok || snap.values == nil {
		return snapshot{values: map[string]string{}}
	}
	return snap
}
