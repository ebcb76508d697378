package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/atelier3d/site-backend/internal/config"
	"github.com/atelier3d/site-backend/internal/db"
	"github.com/atelier3d/site-backend/internal/editing"
	adminapi "github.com/atelier3d/site-backend/internal/http/api/admin"
	"github.com/atelier3d/site-backend/internal/http/api/public"
	"github.com/atelier3d/site-backend/internal/logging"
	"github.com/atelier3d/site-backend/internal/mail"
	"github.com/atelier3d/site-backend/internal/models"
	"github.com/atelier3d/site-backend/internal/security"
	"github.com/atelier3d/site-backend/internal/sitetext"
	"github.com/atelier3d/site-backend/internal/storage"
)

// Migrate opens the database, runs migrations and exits.
func Migrate(ctx context.Context, configPath string) error {
	cfg, errLoad := config.Load(configPath)
	if errLoad != nil {
		return errLoad
	}
	logging.Setup(cfg.Log)

	conn, errOpen := db.Open(cfg.Database.DSN)
	if errOpen != nil {
		return errOpen
	}
	return db.Migrate(conn)
}

// RunServer boots the site backend: config, logging, database,
// migrations, seed data and the HTTP server. It blocks until ctx is
// canceled, then shuts the server down gracefully.
func RunServer(ctx context.Context, configPath string) error {
	cfg, errLoad := config.Load(configPath)
	if errLoad != nil {
		return errLoad
	}
	logging.Setup(cfg.Log)

	conn, errOpen := db.Open(cfg.Database.DSN)
	if errOpen != nil {
		return errOpen
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	if errSeed := seedFirstAdmin(conn, cfg); errSeed != nil {
		return errSeed
	}
	if errSnapshot := sitetext.RefreshSnapshot(ctx, conn); errSnapshot != nil {
		log.WithError(errSnapshot).Warn("app: initial site text snapshot failed")
	}

	store, errStore := storage.NewLocalStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if errStore != nil {
		return errStore
	}

	var mailer mail.Mailer
	if cfg.SMTPConfigured() {
		mailer = mail.NewSMTPMailer(cfg.SMTP)
	} else {
		log.Warn("app: smtp not configured, outbound email disabled")
	}

	engine := buildEngine(cfg, conn, store, mailer)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("server listening on %s", address)
		errCh <- server.ListenAndServe()
	}()

	select {
	case errServe := <-errCh:
		if errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			return errServe
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// buildEngine assembles the gin router with both API surfaces and the
// static file mount for uploaded blobs.
func buildEngine(cfg *config.Config, conn *gorm.DB, store *storage.LocalStorage, mailer mail.Mailer) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	sessions := editing.NewRegistry(conn)
	adminapi.RegisterAdminRoutes(engine, conn, cfg.JWT, store, sessions)
	public.RegisterPublicRoutes(engine, conn, mailer, cfg.SMTPConfigured())

	if strings.HasPrefix(cfg.Storage.BaseURL, "/") {
		engine.Static(cfg.Storage.BaseURL, store.BasePath())
	}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return engine
}

// requestLogger logs each request with method, path, status and
// duration.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("request")
	}
}

// seedFirstAdmin ensures the configured admin account exists so a fresh
// deployment can sign in. An existing row is left untouched.
func seedFirstAdmin(conn *gorm.DB, cfg *config.Config) error {
	username := strings.TrimSpace(cfg.Admin.Username)
	password := strings.TrimSpace(cfg.Admin.Password)
	if username == "" || password == "" {
		var count int64
		if errCount := conn.Model(&models.Admin{}).Count(&count).Error; errCount != nil {
			return errCount
		}
		if count == 0 {
			log.Warn("app: no admin account exists and none is configured")
		}
		return nil
	}

	var existing models.Admin
	errFind := conn.Where("username = ?", username).First(&existing).Error
	if errFind == nil {
		return nil
	}
	if !errors.Is(errFind, gorm.ErrRecordNotFound) {
		return errFind
	}

	hash, errHash := security.HashPassword(password)
	if errHash != nil {
		return errHash
	}
	admin := models.Admin{Username: username, Password: hash, Active: true}
	if errCreate := conn.Create(&admin).Error; errCreate != nil {
		return fmt.Errorf("app: seed admin: %w", errCreate)
	}
	log.Infof("seeded admin account %q", username)
	return nil
}
