package content

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/atelier3d/site-backend/internal/db"
	"github.com/atelier3d/site-backend/internal/models"
)

// ReviewSlots is how many review forms the dashboard renders. The cap is
// a UI convention, not a schema constraint.
const ReviewSlots = 5

// ReviewService manages the curated review collection.
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService constructs a review service.
func NewReviewService(conn *gorm.DB) *ReviewService {
	return &ReviewService{db: conn}
}

// orderedQuery applies the same canonical sort as realizations, over
// display_order.
func (s *ReviewService) orderedQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.Review{}).
		Order(db.OrderNullsLastExpr(s.db, "display_order")).
		Order("created_at DESC")
}

// ListPublished returns published reviews in display order, capped at
// limit when limit > 0.
func (s *ReviewService) ListPublished(ctx context.Context, limit int) ([]models.Review, error) {
	query := s.orderedQuery(ctx).Where("is_published = ?", true)
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []models.Review
	errFind := query.Find(&rows).Error
	return rows, errFind
}

// ListAll returns every review in display order for the dashboard.
func (s *ReviewService) ListAll(ctx context.Context) ([]models.Review, error) {
	var rows []models.Review
	errFind := s.orderedQuery(ctx).Find(&rows).Error
	return rows, errFind
}

// SaveSlot inserts or updates the review shown in a dashboard slot.
// display_order is derived from the slot as slot+1, matching how the
// dashboard has always ranked its five fixed forms. id == 0 inserts.
func (s *ReviewService) SaveSlot(ctx context.Context, id uint64, slot int, row models.Review) (*models.Review, error) {
	if slot < 0 || slot >= ReviewSlots {
		return nil, fmt.Errorf("content: slot out of range: %d", slot)
	}
	if strings.TrimSpace(row.AuthorName) == "" || strings.TrimSpace(row.ReviewText) == "" {
		return nil, fmt.Errorf("content: author name and review text are required")
	}
	if row.Rating < 1 || row.Rating > 5 {
		return nil, fmt.Errorf("content: rating must be between 1 and 5")
	}

	order := slot + 1
	row.DisplayOrder = &order

	if id == 0 {
		if errCreate := s.db.WithContext(ctx).Create(&row).Error; errCreate != nil {
			return nil, errCreate
		}
		return &row, nil
	}

	result := s.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"author_name":   row.AuthorName,
			"rating":        row.Rating,
			"review_text":   row.ReviewText,
			"review_month":  row.ReviewMonth,
			"review_year":   row.ReviewYear,
			"is_published":  row.IsPublished,
			"display_order": order,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	row.ID = id
	return &row, nil
}

// Delete removes a review without reindexing the surviving ranks.
func (s *ReviewService) Delete(ctx context.Context, id uint64) error {
	result := s.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Move shifts a review one slot in the ordered list, swapping
// display_order values with its neighbor inside one transaction.
func (s *ReviewService) Move(ctx context.Context, id uint64, direction Direction) (bool, error) {
	var loaded []models.Review
	if errFind := s.orderedQuery(ctx).Select("id", "display_order").Find(&loaded).Error; errFind != nil {
		return false, fmt.Errorf("content: load ordered reviews: %w", errFind)
	}

	rows := make([]orderedRow, len(loaded))
	for i, row := range loaded {
		rows[i] = orderedRow{id: row.ID, pos: row.DisplayOrder}
	}

	plan, ok, errPlan := planSwap(rows, id, direction)
	if errPlan != nil {
		return false, errPlan
	}
	if !ok {
		return false, nil
	}

	errTx := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if errItem := tx.Model(&models.Review{}).
			Where("id = ?", plan.itemID).
			Update("display_order", plan.itemPos).Error; errItem != nil {
			return errItem
		}
		return tx.Model(&models.Review{}).
			Where("id = ?", plan.targetID).
			Update("display_order", plan.targetPos).Error
	})
	if errTx != nil {
		return false, fmt.Errorf("content: swap reviews %d/%d: %w", plan.itemID, plan.targetID, errTx)
	}
	return true, nil
}
