package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/atelier3d/site-backend/internal/models"
)

// QuoteHandler manages contact form submissions from the dashboard.
type QuoteHandler struct {
	db *gorm.DB
}

// NewQuoteHandler constructs an admin quote handler.
func NewQuoteHandler(conn *gorm.DB) *QuoteHandler {
	return &QuoteHandler{db: conn}
}

// List returns quote requests newest first, optionally filtered by
// status.
func (h *QuoteHandler) List(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).
		Model(&models.QuoteRequest{}).
		Order("created_at DESC")

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		query = query.Where("status = ?", status)
	}

	var rows []models.QuoteRequest
	if errFind := query.Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query quote requests failed"})
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{
			"id":         row.ID,
			"name":       row.Name,
			"email":      row.Email,
			"phone":      row.Phone,
			"message":    row.Message,
			"file_url":   row.FileURL,
			"file_name":  row.FileName,
			"status":     row.Status,
			"created_at": row.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"quotes": out})
}

// statusRequest defines the status update body.
type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves a quote request through its workflow.
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var body statusRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	status := strings.TrimSpace(body.Status)
	switch status {
	case models.QuoteStatusNew, models.QuoteStatusProcessing, models.QuoteStatusDone:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	result := h.db.WithContext(c.Request.Context()).
		Model(&models.QuoteRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}

// Delete removes a quote request.
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	result := h.db.WithContext(c.Request.Context()).Delete(&models.QuoteRequest{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
