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

// RealizationHandler manages portfolio entries from the dashboard.
type RealizationHandler struct {
	service *content.RealizationService
}

// NewRealizationHandler constructs a RealizationHandler.
func NewRealizationHandler(service *content.RealizationService) *RealizationHandler {
	return &RealizationHandler{service: service}
}

// realizationRequest defines the create/update body.
type realizationRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	ImageURL2   string `json:"image_url_2"`
	ImageURL3   string `json:"image_url_3"`
	ImageURL4   string `json:"image_url_4"`
	Category    string `json:"category"`
	Published   bool   `json:"published"`
}

// List returns every realization in display order.
func (h *RealizationHandler) List(c *gin.Context) {
	rows, errList := h.service.ListAll(c.Request.Context())
	if errList != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query realizations failed"})
		return
	}

	out := make([]gin.H, 0, len(rows))
	for i := range rows {
		out = append(out, formatRealization(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"realizations": out})
}

// Create inserts a new realization.
func (h *RealizationHandler) Create(c *gin.Context) {
	var body realizationRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(body.Title) == "" || strings.TrimSpace(body.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and description are required"})
		return
	}

	row := models.Realization{
		Title:       body.Title,
		Description: body.Description,
		ImageURL:    body.ImageURL,
		ImageURL2:   body.ImageURL2,
		ImageURL3:   body.ImageURL3,
		ImageURL4:   body.ImageURL4,
		Category:    body.Category,
		Published:   body.Published,
	}
	if errCreate := h.service.Create(c.Request.Context(), &row); errCreate != nil {
		log.WithError(errCreate).Error("admin: create realization failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, formatRealization(&row))
}

// Update replaces the editable fields of an existing realization.
func (h *RealizationHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var body realizationRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(body.Title) == "" || strings.TrimSpace(body.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and description are required"})
		return
	}

	patch := map[string]any{
		"title":       body.Title,
		"description": body.Description,
		"image_url":   body.ImageURL,
		"image_url_2": body.ImageURL2,
		"image_url_3": body.ImageURL3,
		"image_url_4": body.ImageURL4,
		"category":    body.Category,
		"published":   body.Published,
	}
	if errUpdate := h.service.Update(c.Request.Context(), id, patch); errUpdate != nil {
		if errors.Is(errUpdate, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete removes a realization.
func (h *RealizationHandler) Delete(c *gin.Context) {
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

// TogglePublished flips the published flag.
func (h *RealizationHandler) TogglePublished(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	published, errToggle := h.service.TogglePublished(c.Request.Context(), id)
	if errToggle != nil {
		if errors.Is(errToggle, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "toggle failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "published": published})
}

// moveRequest defines the reorder body.
type moveRequest struct {
	Direction string `json:"direction"`
}

// Move swaps a realization with its neighbor in the ordered list. A
// boundary move answers moved=false without touching anything.
func (h *RealizationHandler) Move(c *gin.Context) {
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
		log.WithError(errMove).Errorf("admin: move realization %d failed", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "move failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "moved": moved})
}

// parseIDParam reads the :id path parameter, answering 400 on garbage.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
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
