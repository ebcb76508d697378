package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/atelier3d/site-backend/internal/sitetext"
)

// SiteTextHandler serves resolved site text for the public pages.
type SiteTextHandler struct {
	db *gorm.DB
}

// NewSiteTextHandler constructs a public site text handler.
func NewSiteTextHandler(conn *gorm.DB) *SiteTextHandler {
	return &SiteTextHandler{db: conn}
}

// Resolve returns display values for the requested keys. Keys without a
// stored, non-blank override resolve to their compiled-in defaults;
// unknown keys resolve to an empty string rather than an error.
//
// The no-keys form is what every page load fetches, so it reads the
// in-memory snapshot instead of the database. Admin writes refresh the
// snapshot.
func (h *SiteTextHandler) Resolve(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("keys"))

	if raw == "" {
		values := make(map[string]string, len(sitetext.Defaults))
		for key, def := range sitetext.Defaults {
			values[key] = sitetext.SnapshotValue(key, def)
		}
		c.JSON(http.StatusOK, gin.H{"texts": values})
		return
	}

	defaults := map[string]string{}
	for _, key := range strings.Split(raw, ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		defaults[key] = sitetext.DefaultFor(key)
	}

	values := sitetext.ResolveMany(c.Request.Context(), h.db, defaults)
	c.JSON(http.StatusOK, gin.H{"texts": values})
}
