package handlers

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/atelier3d/site-backend/internal/mail"
	"github.com/atelier3d/site-backend/internal/models"
)

// QuoteHandler accepts contact form submissions.
type QuoteHandler struct {
	db     *gorm.DB
	mailer mail.Mailer
}

// NewQuoteHandler constructs a quote submission handler.
func NewQuoteHandler(conn *gorm.DB, mailer mail.Mailer) *QuoteHandler {
	return &QuoteHandler{db: conn, mailer: mailer}
}

// quoteRequest defines the contact form body.
type quoteRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Message  string `json:"message"`
	FileURL  string `json:"file_url"`
	FileName string `json:"file_name"`
}

// Create stores a quote request and sends a notification email. The
// email is best effort: a delivery failure is logged and the submission
// still succeeds.
func (h *QuoteHandler) Create(c *gin.Context) {
	var body quoteRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	name := strings.TrimSpace(body.Name)
	email := strings.TrimSpace(body.Email)
	message := strings.TrimSpace(body.Message)
	if name == "" || email == "" || message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and message are required"})
		return
	}
	if !strings.Contains(email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email address"})
		return
	}

	metadata, _ := json.Marshal(map[string]string{
		"user_agent": c.Request.UserAgent(),
		"locale":     c.GetHeader("Accept-Language"),
	})

	row := models.QuoteRequest{
		Name:     name,
		Email:    email,
		Phone:    strings.TrimSpace(body.Phone),
		Message:  message,
		FileURL:  strings.TrimSpace(body.FileURL),
		FileName: strings.TrimSpace(body.FileName),
		Status:   models.QuoteStatusNew,
		Metadata: datatypes.JSON(metadata),
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&row).Error; errCreate != nil {
		log.WithError(errCreate).Error("public: store quote request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an error occurred, please try again"})
		return
	}

	if h.mailer != nil {
		msg := mail.Message{
			Subject: fmt.Sprintf("Nouvelle demande de devis — %s", name),
			HTML:    renderQuoteEmail(&row),
			ReplyTo: email,
			RefID:   mail.NewRefID(),
		}
		if errSend := h.mailer.Send(c.Request.Context(), msg); errSend != nil {
			log.WithError(errSend).Warnf("public: quote notification failed (quote=%d)", row.ID)
		}
	}

	c.JSON(http.StatusCreated, gin.H{"id": row.ID, "status": row.Status})
}

// renderQuoteEmail builds the notification body for a submission.
func renderQuoteEmail(row *models.QuoteRequest) string {
	var b strings.Builder
	b.WriteString("<h2>Nouvelle demande de devis</h2>")
	writeField(&b, "Nom", row.Name)
	writeField(&b, "Email", row.Email)
	if row.Phone != "" {
		writeField(&b, "Téléphone", row.Phone)
	}
	writeField(&b, "Message", row.Message)
	if row.FileURL != "" {
		b.WriteString(fmt.Sprintf("<p><strong>Fichier</strong>: <a href=%q>%s</a></p>", row.FileURL, html.EscapeString(row.FileName)))
	}
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(fmt.Sprintf("<p><strong>%s</strong>: %s</p>", label, html.EscapeString(value)))
}
