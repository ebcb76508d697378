package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/atelier3d/site-backend/internal/models"
)

func seedReview(t *testing.T, conn *gorm.DB, author string, order *int, published bool, createdAt time.Time) uint64 {
	t.Helper()
	row := models.Review{
		AuthorName:   author,
		Rating:       5,
		ReviewText:   "text",
		IsPublished:  published,
		DisplayOrder: order,
		CreatedAt:    createdAt,
	}
	if errCreate := conn.Create(&row).Error; errCreate != nil {
		t.Fatalf("seed review %s: %v", author, errCreate)
	}
	return row.ID
}

func TestSaveSlotDerivesDisplayOrderFromSlot(t *testing.T) {
	conn := openContentDB(t)
	service := NewReviewService(conn)

	saved, errSave := service.SaveSlot(context.Background(), 0, 2, models.Review{
		AuthorName:  "Claire",
		Rating:      5,
		ReviewText:  "Impeccable",
		IsPublished: true,
	})
	if errSave != nil {
		t.Fatalf("save slot: %v", errSave)
	}
	if saved.DisplayOrder == nil || *saved.DisplayOrder != 3 {
		t.Fatalf("expected display order 3 for slot 2, got %v", saved.DisplayOrder)
	}

	var stored models.Review
	if errFind := conn.First(&stored, saved.ID).Error; errFind != nil {
		t.Fatalf("load saved review: %v", errFind)
	}
	if stored.DisplayOrder == nil || *stored.DisplayOrder != 3 {
		t.Fatalf("expected persisted display order 3, got %v", stored.DisplayOrder)
	}
}

func TestSaveSlotUpdatesExistingRow(t *testing.T) {
	conn := openContentDB(t)
	service := NewReviewService(conn)

	id := seedReview(t, conn, "Avant", intPtr(1), false, time.Now().UTC())

	saved, errSave := service.SaveSlot(context.Background(), id, 4, models.Review{
		AuthorName:  "Après",
		Rating:      4,
		ReviewText:  "Mis à jour",
		IsPublished: true,
	})
	if errSave != nil {
		t.Fatalf("save slot: %v", errSave)
	}
	if saved.ID != id {
		t.Fatalf("expected update of row %d, got %d", id, saved.ID)
	}

	var stored models.Review
	if errFind := conn.First(&stored, id).Error; errFind != nil {
		t.Fatalf("load review: %v", errFind)
	}
	if stored.AuthorName != "Après" || !stored.IsPublished {
		t.Fatalf("update not persisted: %+v", stored)
	}
	if stored.DisplayOrder == nil || *stored.DisplayOrder != 5 {
		t.Fatalf("expected display order 5 for slot 4, got %v", stored.DisplayOrder)
	}
}

func TestSaveSlotValidation(t *testing.T) {
	conn := openContentDB(t)
	service := NewReviewService(conn)
	valid := models.Review{AuthorName: "A", Rating: 5, ReviewText: "B"}

	if _, errSave := service.SaveSlot(context.Background(), 0, ReviewSlots, valid); errSave == nil {
		t.Fatal("expected error for slot out of range")
	}
	if _, errSave := service.SaveSlot(context.Background(), 0, -1, valid); errSave == nil {
		t.Fatal("expected error for negative slot")
	}

	noAuthor := valid
	noAuthor.AuthorName = "  "
	if _, errSave := service.SaveSlot(context.Background(), 0, 0, noAuthor); errSave == nil {
		t.Fatal("expected error for blank author")
	}

	badRating := valid
	badRating.Rating = 6
	if _, errSave := service.SaveSlot(context.Background(), 0, 0, badRating); errSave == nil {
		t.Fatal("expected error for rating out of range")
	}
}

func TestSaveSlotUnknownRow(t *testing.T) {
	conn := openContentDB(t)
	service := NewReviewService(conn)

	_, errSave := service.SaveSlot(context.Background(), 999, 0, models.Review{
		AuthorName: "A", Rating: 5, ReviewText: "B",
	})
	if !errors.Is(errSave, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", errSave)
	}
}

func TestListPublishedReviewsOrderedAndCapped(t *testing.T) {
	conn := openContentDB(t)
	service := NewReviewService(conn)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	seedReview(t, conn, "second", intPtr(2), true, base)
	seedReview(t, conn, "first", intPtr(1), true, base.Add(time.Hour))
	seedReview(t, conn, "unranked", nil, true, base.Add(2*time.Hour))
	seedReview(t, conn, "hidden", intPtr(3), false, base)

	rows, errList := service.ListPublished(context.Background(), 2)
	if errList != nil {
		t.Fatalf("list published: %v", errList)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows with limit, got %d", len(rows))
	}
	if rows[0].AuthorName != "first" || rows[1].AuthorName != "second" {
		t.Fatalf("unexpected order: %s, %s", rows[0].AuthorName, rows[1].AuthorName)
	}

	rows, errList = service.ListPublished(context.Background(), 0)
	if errList != nil {
		t.Fatalf("list published unlimited: %v", errList)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 published rows, got %d", len(rows))
	}
	if rows[2].AuthorName != "unranked" {
		t.Fatalf("expected unranked review last, got %s", rows[2].AuthorName)
	}
}

func TestMoveReviewSwapsDisplayOrder(t *testing.T) {
	conn := openContentDB(t)
	service := NewReviewService(conn)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := seedReview(t, conn, "first", intPtr(1), true, base)
	second := seedReview(t, conn, "second", intPtr(2), true, base.Add(time.Hour))

	moved, errMove := service.Move(context.Background(), second, DirectionUp)
	if errMove != nil || !moved {
		t.Fatalf("move: moved=%v err=%v", moved, errMove)
	}

	var rows []models.Review
	if errFind := conn.Find(&rows).Error; errFind != nil {
		t.Fatalf("load reviews: %v", errFind)
	}
	for _, row := range rows {
		want := 2
		if row.ID == second {
			want = 1
		}
		if row.ID != first && row.ID != second {
			continue
		}
		if row.DisplayOrder == nil || *row.DisplayOrder != want {
			t.Fatalf("row %d: expected order %d, got %v", row.ID, want, row.DisplayOrder)
		}
	}
}
