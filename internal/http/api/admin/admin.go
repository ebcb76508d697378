// Package admin registers the password-gated dashboard API.
package admin

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/atelier3d/site-backend/internal/config"
	"github.com/atelier3d/site-backend/internal/content"
	"github.com/atelier3d/site-backend/internal/editing"
	"github.com/atelier3d/site-backend/internal/http/api/admin/handlers"
	"github.com/atelier3d/site-backend/internal/storage"
)

// RegisterAdminRoutes registers login and all protected dashboard
// routes under /api/admin.
func RegisterAdminRoutes(r *gin.Engine, conn *gorm.DB, jwtCfg config.JWTConfig, store storage.Storage, sessions *editing.Registry) {
	if r == nil || conn == nil {
		return
	}

	group := r.Group("/api/admin")

	authHandler := handlers.NewAuthHandler(conn, jwtCfg, sessions)
	group.POST("/login", authHandler.Login)
	group.POST("/login/totp", authHandler.LoginTOTP)

	authed := group.Group("")
	authed.Use(adminAuthMiddleware(conn, jwtCfg))

	authed.POST("/logout", authHandler.Logout)

	mfaHandler := handlers.NewMFAHandler(conn)
	authed.GET("/mfa/status", mfaHandler.Status)
	authed.POST("/mfa/totp/prepare", mfaHandler.PrepareTOTP)
	authed.POST("/mfa/totp/confirm", mfaHandler.ConfirmTOTP)
	authed.POST("/mfa/totp/disable", mfaHandler.DisableTOTP)

	textHandler := handlers.NewSiteTextHandler(conn)
	authed.GET("/site-texts", textHandler.List)
	authed.PUT("/site-texts/:key", textHandler.Put)
	authed.POST("/site-texts/banner", textHandler.SaveBanner)

	sessionHandler := handlers.NewEditSessionHandler(sessions)
	authed.GET("/edit-session", sessionHandler.Status)
	authed.POST("/edit-session/stage", sessionHandler.Stage)
	authed.POST("/edit-session/save", sessionHandler.Save)

	realizationHandler := handlers.NewRealizationHandler(content.NewRealizationService(conn))
	authed.GET("/realizations", realizationHandler.List)
	authed.POST("/realizations", realizationHandler.Create)
	authed.PUT("/realizations/:id", realizationHandler.Update)
	authed.DELETE("/realizations/:id", realizationHandler.Delete)
	authed.POST("/realizations/:id/publish", realizationHandler.TogglePublished)
	authed.POST("/realizations/:id/move", realizationHandler.Move)

	reviewHandler := handlers.NewReviewHandler(content.NewReviewService(conn))
	authed.GET("/reviews", reviewHandler.List)
	authed.PUT("/reviews/slot/:slot", reviewHandler.SaveSlot)
	authed.DELETE("/reviews/:id", reviewHandler.Delete)
	authed.POST("/reviews/:id/move", reviewHandler.Move)

	quoteHandler := handlers.NewQuoteHandler(conn)
	authed.GET("/quotes", quoteHandler.List)
	authed.PUT("/quotes/:id/status", quoteHandler.UpdateStatus)
	authed.DELETE("/quotes/:id", quoteHandler.Delete)

	if store != nil {
		uploadHandler := handlers.NewUploadHandler(store)
		authed.POST("/uploads/:bucket", uploadHandler.Upload)
	}
}
