package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/atelier3d/site-backend/internal/mail"
)

// maxAttachmentBytes caps attachment size as declared by the client.
const maxAttachmentBytes = 4 * 1024 * 1024

// maxFilenameLength truncates sanitized attachment filenames.
const maxFilenameLength = 120

// sendEmailRequest defines the send endpoint body.
type sendEmailRequest struct {
	Subject    string             `json:"subject"`
	HTML       string             `json:"html"`
	ReplyTo    string             `json:"replyTo"`
	Attachment *attachmentRequest `json:"attachment"`
}

// attachmentRequest carries a base64 attachment.
type attachmentRequest struct {
	Filename    string `json:"filename"`
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// SendEmailHandler exposes the transactional send endpoint the contact
// form posts to.
type SendEmailHandler struct {
	mailer     mail.Mailer
	configured bool
}

// NewSendEmailHandler constructs the send endpoint handler. configured
// reports whether an SMTP transport exists; when false the endpoint
// answers 500 for every send attempt.
func NewSendEmailHandler(mailer mail.Mailer, configured bool) *SendEmailHandler {
	return &SendEmailHandler{mailer: mailer, configured: configured}
}

// Handle serves all methods on the endpoint: OPTIONS preflight returns
// 200 with an empty body, anything but POST returns 405, and every
// response carries permissive CORS headers.
func (h *SendEmailHandler) Handle(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")

	switch c.Request.Method {
	case http.MethodOptions:
		c.Status(http.StatusOK)
		return
	case http.MethodPost:
	default:
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
		return
	}

	if !h.configured || h.mailer == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Missing SMTP configuration"})
		return
	}

	var body sendEmailRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if strings.TrimSpace(body.Subject) == "" || strings.TrimSpace(body.HTML) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: subject, html"})
		return
	}

	msg := mail.Message{
		Subject: body.Subject,
		HTML:    body.HTML,
		ReplyTo: strings.TrimSpace(body.ReplyTo),
		RefID:   mail.NewRefID(),
	}

	if att := body.Attachment; att != nil && att.Content != "" && att.Filename != "" {
		// The declared size gates before any decode work.
		if att.Size > maxAttachmentBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Attachment too large"})
			return
		}
		content, errDecode := base64.StdEncoding.DecodeString(att.Content)
		if errDecode != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment format"})
			return
		}
		if int64(len(content)) > maxAttachmentBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Attachment too large"})
			return
		}
		msg.Attachment = &mail.Attachment{
			Filename:    SanitizeFilename(att.Filename),
			Content:     content,
			ContentType: strings.TrimSpace(att.ContentType),
		}
	}

	if errSend := h.mailer.Send(c.Request.Context(), msg); errSend != nil {
		log.WithError(errSend).Error("public: send email failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SanitizeFilename strips path separators and newlines from an
// attachment filename and truncates it to a safe length.
func SanitizeFilename(name string) string {
	replacer := strings.NewReplacer("\\", "_", "/", "_", "\r", "_", "\n", "_")
	out := replacer.Replace(name)
	if len(out) > maxFilenameLength {
		out = out[:maxFilenameLength]
	}
	return out
}
