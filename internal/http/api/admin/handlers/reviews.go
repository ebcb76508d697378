package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/atelier3d/site-backend/internal/content"
	"github.com/atelier3d/site-backend/internal/models"
)

// ReviewHandler manages curated reviews from the dashboard.
type ReviewHandler struct {
	service *content.ReviewService
}

// NewReviewHandler constructs a ReviewHandler.
func NewReviewHandler(service *content.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// List returns every review in display order.
func (h *ReviewHandler) List(c *gin.Context) {
	rows, errList := h.service.ListAll(c.Request.Context())
	if errList != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query reviews failed"})
		return
	}

	out := make([]gin.H, 0, len(rows))
	for i := range rows {
		out = append(out, formatReview(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"reviews": out})
}

// reviewSlotRequest defines the save body for one dashboard slot.
type reviewSlotRequest struct {
	ID          uint64 `json:"id"`
	AuthorName  string `json:"author_name"`
	Rating      int    `json:"rating"`
	ReviewText  string `json:"review_text"`
	ReviewMonth *int   `json:"review_month"`
	ReviewYear  *int   `json:"review_year"`
	IsPublished bool   `json:"is_published"`
}

// SaveSlot inserts or updates the review in a dashboard slot. The slot
// index dictates display_order.
func (h *ReviewHandler) SaveSlot(c *gin.Context) {
	slot, errParse := strconv.Atoi(strings.TrimSpace(c.Param("slot")))
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot"})
		return
	}

	var body reviewSlotRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	row := models.Review{
		AuthorName:  strings.TrimSpace(body.AuthorName),
		Rating:      body.Rating,
		ReviewText:  strings.TrimSpace(body.ReviewText),
		ReviewMonth: body.ReviewMonth,
		ReviewYear:  body.ReviewYear,
		IsPublished: body.IsPublished,
	}

	saved, errSave := h.service.SaveSlot(c.Request.Context(), body.ID, slot, row)
	if errSave != nil {
		if errors.Is(errSave, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errSave.Error()})
		return
	}
	c.JSON(http.StatusOK, formatReview(saved))
}

// Delete removes a review.
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if errDelete := h.service.Delete(c.Request.Context(), id); errDelete != nil {
		if errors.Is(errDelete, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Move swaps a review with its neighbor in the ordered list.
func (h *ReviewHandler) Move(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var body moveRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	direction, errDirection := content.ParseDirection(body.Direction)
	if errDirection != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be up or down"})
		return
	}

	moved, errMove := h.service.Move(c.Request.Context(), id, direction)
	if errMove != nil {
		if errors.Is(errMove, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		log.WithError(errMove).Errorf("admin: move review %d failed", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "move failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "moved": moved})
}

func formatReview(row *models.Review) gin.H {
	return gin.H{
		"id":            row.ID,
		"author_name":   row.AuthorName,
		"rating":        row.Rating,
		"review_text":   row.ReviewText,
		"review_month":  row.ReviewMonth,
		"review_year":   row.ReviewYear,
		"is_published":  row.IsPublished,
		"display_order": row.DisplayOrder,
		"created_at":    row.CreatedAt,
	}
}
