package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/atelier3d/site-backend/internal/models"
	"github.com/atelier3d/site-backend/internal/sitetext"
)

// SiteTextHandler manages text overrides from the dashboard.
type SiteTextHandler struct {
	db *gorm.DB
}

// NewSiteTextHandler constructs an admin site text handler.
func NewSiteTextHandler(conn *gorm.DB) *SiteTextHandler {
	return &SiteTextHandler{db: conn}
}

// List returns every stored override ordered by key.
func (h *SiteTextHandler) List(c *gin.Context) {
	rows, errList := sitetext.List(c.Request.Context(), h.db)
	if errList != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query site texts failed"})
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{
			"key":         row.Key,
			"value":       row.Value,
			"description": row.Description,
			"updated_at":  row.UpdatedAt,
			"updated_by":  row.UpdatedBy,
		})
	}
	c.JSON(http.StatusOK, gin.H{"site_texts": out})
}

// siteTextRequest defines the upsert body for one override.
type siteTextRequest struct {
	Value       string `json:"value"`
	Description string `json:"description"`
}

// Put inserts or replaces one override. Saving an empty value is valid;
// the public resolver then falls back to the compiled-in default.
func (h *SiteTextHandler) Put(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key is required"})
		return
	}

	var body siteTextRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	row := models.SiteText{
		Key:         key,
		Value:       body.Value,
		Description: body.Description,
		UpdatedBy:   readAdminUsername(c),
	}
	if errUpsert := sitetext.Upsert(c.Request.Context(), h.db, row); errUpsert != nil {
		log.WithError(errUpsert).Errorf("admin: upsert site text %s failed", key)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	h.refreshSnapshot(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "key": key})
}

// bannerRequest defines the banner save body. The three banner keys are
// saved together in one batch, the way the dashboard edits them.
type bannerRequest struct {
	HTML    string `json:"html"`
	Link    string `json:"link"`
	Enabled bool   `json:"enabled"`
}

// SaveBanner upserts the promo banner keys in a single statement.
func (h *SiteTextHandler) SaveBanner(c *gin.Context) {
	var body bannerRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	enabled := "false"
	if body.Enabled {
		enabled = "true"
	}

	editor := readAdminUsername(c)
	rows := []models.SiteText{
		{Key: sitetext.BannerHTMLKey, Value: body.HTML, Description: "Texte HTML du bandeau promotionnel", UpdatedBy: editor},
		{Key: sitetext.BannerLinkKey, Value: body.Link, Description: "Lien cliquable du bandeau", UpdatedBy: editor},
		{Key: sitetext.BannerEnabledKey, Value: enabled, Description: "Activation du bandeau", UpdatedBy: editor},
	}
	if errUpsert := sitetext.UpsertBatch(c.Request.Context(), h.db, rows); errUpsert != nil {
		log.WithError(errUpsert).Error("admin: save banner failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	h.refreshSnapshot(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// refreshSnapshot reloads the public snapshot after a write. Failure is
// tolerated; the snapshot catches up on the next successful write.
func (h *SiteTextHandler) refreshSnapshot(c *gin.Context) {
	if errRefresh := sitetext.RefreshSnapshot(c.Request.Context(), h.db); errRefresh != nil {
		log.WithError(errRefresh).Warn("admin: refresh site text snapshot failed")
	}
}
