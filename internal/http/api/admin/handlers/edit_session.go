package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atelier3d/site-backend/internal/editing"
)

// EditSessionHandler exposes the per-operator staging area for site
// text edits, so the dashboard can show dirty/saving/saved/failed
// indicators per field.
type EditSessionHandler struct {
	sessions *editing.Registry
}

// NewEditSessionHandler constructs an EditSessionHandler.
func NewEditSessionHandler(sessions *editing.Registry) *EditSessionHandler {
	return &EditSessionHandler{sessions: sessions}
}

// session resolves the caller's editing session from their token.
func (h *EditSessionHandler) session(c *gin.Context) *editing.Session {
	return h.sessions.Get(readAdminToken(c), readAdminUsername(c))
}

// stageRequest defines the body for staging one field edit.
type stageRequest struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// Stage records a local edit and marks the field dirty.
func (h *EditSessionHandler) Stage(c *gin.Context) {
	var body stageRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	key := strings.TrimSpace(body.Key)
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key is required"})
		return
	}

	state := h.session(c).Stage(key, body.Value, body.Description)
	c.JSON(http.StatusOK, gin.H{"key": key, "state": state})
}

// saveRequest defines the body for committing one staged field.
type saveRequest struct {
	Key string `json:"key"`
}

// Save commits the staged value for a key. A rejected write answers 502
// with state "failed"; the staged value is kept for retry.
func (h *EditSessionHandler) Save(c *gin.Context) {
	var body saveRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	key := strings.TrimSpace(body.Key)
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key is required"})
		return
	}

	state, errSave := h.session(c).Save(c.Request.Context(), key)
	if errSave != nil {
		if errors.Is(errSave, editing.ErrNothingStaged) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nothing staged for key", "key": key})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "save failed", "key": key, "state": state})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "state": state})
}

// Status returns the state of every tracked field in the session.
func (h *EditSessionHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fields": h.session(c).Snapshot()})
}
