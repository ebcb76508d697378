// Package public registers the routes the marketing site reads from.
package public

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/atelier3d/site-backend/internal/content"
	"github.com/atelier3d/site-backend/internal/http/api/public/handlers"
	"github.com/atelier3d/site-backend/internal/mail"
)

// RegisterPublicRoutes registers the unauthenticated API surface.
func RegisterPublicRoutes(r *gin.Engine, conn *gorm.DB, mailer mail.Mailer, mailConfigured bool) {
	if r == nil || conn == nil {
		return
	}

	api := r.Group("/api")

	textHandler := handlers.NewSiteTextHandler(conn)
	api.GET("/site-texts", textHandler.Resolve)

	contentHandler := handlers.NewContentHandler(
		content.NewRealizationService(conn),
		content.NewReviewService(conn),
	)
	api.GET("/realizations", contentHandler.ListRealizations)
	api.GET("/reviews", contentHandler.ListReviews)

	quoteHandler := handlers.NewQuoteHandler(conn, mailer)
	api.POST("/quotes", quoteHandler.Create)

	sendHandler := handlers.NewSendEmailHandler(mailer, mailConfigured)
	r.Any("/api/send-email", sendHandler.Handle)
}
