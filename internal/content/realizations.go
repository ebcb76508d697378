package content

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/atelier3d/site-backend/internal/db"
	"github.com/atelier3d/site-backend/internal/models"
)

// RealizationService manages the ordered portfolio collection.
type RealizationService struct {
	db *gorm.DB
}

// NewRealizationService constructs a realization service.
func NewRealizationService(conn *gorm.DB) *RealizationService {
	return &RealizationService{db: conn}
}

// orderedQuery applies the canonical sort: explicit rank first (nulls
// last), then newest first. The move operation depends on this exact
// ordering to compute swap targets.
func (s *RealizationService) orderedQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.Realization{}).
		Order(db.OrderNullsLastExpr(s.db, "order_position")).
		Order("created_at DESC")
}

// ListPublished returns published rows in display order.
func (s *RealizationService) ListPublished(ctx context.Context) ([]models.Realization, error) {
	var rows []models.Realization
	errFind := s.orderedQuery(ctx).Where("published = ?", true).Find(&rows).Error
	return rows, errFind
}

// ListAll returns every row in display order for the dashboard.
func (s *RealizationService) ListAll(ctx context.Context) ([]models.Realization, error) {
	var rows []models.Realization
	errFind := s.orderedQuery(ctx).Find(&rows).Error
	return rows, errFind
}

// Create inserts a new realization. New entries start unpublished unless
// the caller says otherwise.
func (s *RealizationService) Create(ctx context.Context, row *models.Realization) error {
	return s.db.WithContext(ctx).Create(row).Error
}

// Update replaces the editable fields of an existing realization.
func (s *RealizationService) Update(ctx context.Context, id uint64, patch map[string]any) error {
	result := s.db.WithContext(ctx).
		Model(&models.Realization{}).
		Where("id = ?", id).
		Updates(patch)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TogglePublished flips the published flag and returns the new value.
func (s *RealizationService) TogglePublished(ctx context.Context, id uint64) (bool, error) {
	var row models.Realization
	if errFind := s.db.WithContext(ctx).Select("id", "published").First(&row, id).Error; errFind != nil {
		return false, errFind
	}
	next := !row.Published
	errUpdate := s.db.WithContext(ctx).
		Model(&models.Realization{}).
		Where("id = ?", id).
		Update("published", next).Error
	return next, errUpdate
}

// Delete removes a realization. Surviving order_position values are left
// untouched; the rank space is sparse and tolerates gaps.
func (s *RealizationService) Delete(ctx context.Context, id uint64) error {
	result := s.db.WithContext(ctx).Delete(&models.Realization{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Move shifts a realization one slot up or down in the ordered list by
// swapping ranks with its neighbor. Both rank writes happen in a single
// transaction so a failure never leaves a half-applied swap. Boundary
// moves are silent no-ops: moved=false, nil error, zero writes.
func (s *RealizationService) Move(ctx context.Context, id uint64, direction Direction) (bool, error) {
	var loaded []models.Realization
	if errFind := s.orderedQuery(ctx).Select("id", "order_position").Find(&loaded).Error; errFind != nil {
		return false, fmt.Errorf("content: load ordered realizations: %w", errFind)
	}

	rows := make([]orderedRow, len(loaded))
	for i, row := range loaded {
		rows[i] = orderedRow{id: row.ID, pos: row.OrderPosition}
	}

	plan, ok, errPlan := planSwap(rows, id, direction)
	if errPlan != nil {
		return false, errPlan
	}
	if !ok {
		return false, nil
	}

	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if errItem := tx.Model(&models.Realization{}).
			Where("id = ?", plan.itemID).
			Update("order_position", plan.itemPos).Error; errItem != nil {
			return errItem
		}
		return tx.Model(&models.Realization{}).
			Where("id = ?", plan.targetID).
			Update("order_position", plan.targetPos).Error
	})
	if errTx != nil {
		return false, fmt.Errorf("content: swap realizations %d/%d: %w", plan.itemID, plan.targetID, errTx)
	}
	return true, nil
}

// Get loads a single realization.
func (s *RealizationService) Get(ctx context.Context, id uint64) (*models.Realization, error) {
	var row models.Realization
	if errFind := s.db.WithContext(ctx).First(&row, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, errFind
	}
	return &row, nil
}
