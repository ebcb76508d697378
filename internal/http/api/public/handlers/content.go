package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/atelier3d/site-backend/internal/content"
	"github.com/atelier3d/site-backend/internal/models"
)

// ContentHandler serves the published portfolio and review lists.
type ContentHandler struct {
	realizations *content.RealizationService
	reviews      *content.ReviewService
}

// NewContentHandler constructs a public content handler.
func NewContentHandler(realizations *content.RealizationService, reviews *content.ReviewService) *ContentHandler {
	return &ContentHandler{realizations: realizations, reviews: reviews}
}

// ListRealizations returns published portfolio entries in display order.
// A read failure degrades to an empty list; the public site never sees
// the error.
func (h *ContentHandler) ListRealizations(c *gin.Context) {
	rows, errList := h.realizations.ListPublished(c.Request.Context())
	if errList != nil {
		log.WithError(errList).Warn("public: list realizations failed")
		c.JSON(http.StatusOK, gin.H{"realizations": []gin.H{}})
		return
	}

	out := make([]gin.H, 0, len(rows))
	for i := range rows {
		out = append(out, formatRealization(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"realizations": out})
}

// ListReviews returns published reviews in display order, five by
// default.
func (h *ContentHandler) ListReviews(c *gin.Context) {
	limit := content.ReviewSlots
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if parsed, errParse := strconv.Atoi(raw); errParse == nil && parsed > 0 {
			limit = parsed
		}
	}

	rows, errList := h.reviews.ListPublished(c.Request.Context(), limit)
	if errList != nil {
		log.WithError(errList).Warn("public: list reviews failed")
		c.JSON(http.StatusOK, gin.H{"reviews": []gin.H{}})
		return
	}

	out := make([]gin.H, 0, len(rows))
	for i := range rows {
		out = append(out, formatReview(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"reviews": out})
}

func formatRealization(row *models.Realization) gin.H {
	return gin.H{
		"id":             row.ID,
		"title":          row.Title,
		"description":    row.Description,
		"image_url":      row.ImageURL,
		"image_url_2":    row.ImageURL2,
		"image_url_3":    row.ImageURL3,
		"image_url_4":    row.ImageURL4,
		"category":       row.Category,
		"published":      row.Published,
		"order_position": row.OrderPosition,
		"created_at":     row.CreatedAt,
	}
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
