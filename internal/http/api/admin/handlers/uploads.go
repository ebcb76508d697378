package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/atelier3d/site-backend/internal/storage"
)

// maxUploadBytes caps a single uploaded file.
const maxUploadBytes = 15 << 20

// allowedUploadExts lists accepted upload extensions: site imagery plus
// the model formats customers attach to quote requests.
var allowedUploadExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".stl":  {},
	".obj":  {},
	".3mf":  {},
	".pdf":  {},
	".zip":  {},
}

// UploadHandler stores files and returns their public URLs.
type UploadHandler struct {
	store storage.Storage
}

// NewUploadHandler constructs an UploadHandler.
func NewUploadHandler(store storage.Storage) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload accepts one multipart file and stores it under the bucket in
// the path. The stored name is generated, never the client's.
func (h *UploadHandler) Upload(c *gin.Context) {
	bucket := strings.TrimSpace(c.Param("bucket"))
	if bucket == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bucket is required"})
		return
	}

	file, errForm := c.FormFile("file")
	if errForm != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedUploadExts[ext]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
		return
	}

	name := generateUploadName(ext)

	reader, errOpen := file.Open()
	if errOpen != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read upload failed"})
		return
	}
	defer reader.Close()

	if errSave := h.store.Save(c.Request.Context(), bucket, name, reader); errSave != nil {
		log.WithError(errSave).Errorf("admin: store upload failed (bucket=%s)", bucket)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store upload failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"path":      bucket + "/" + name,
		"url":       h.store.PublicURL(bucket, name),
		"file_name": file.Filename,
	})
}

// generateUploadName builds a collision-resistant stored name in the
// same {timestamp}-{random}{ext} shape the dashboard always used.
func generateUploadName(ext string) string {
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), hex.EncodeToString(buf), ext)
}
