package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/atelier3d/site-backend/internal/config"
	"github.com/atelier3d/site-backend/internal/editing"
	"github.com/atelier3d/site-backend/internal/models"
	"github.com/atelier3d/site-backend/internal/security"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	db       *gorm.DB
	jwtCfg   config.JWTConfig
	sessions *editing.Registry
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(conn *gorm.DB, jwtCfg config.JWTConfig, sessions *editing.Registry) *AuthHandler {
	return &AuthHandler{db: conn, jwtCfg: jwtCfg, sessions: sessions}
}

// loginRequest defines the request body for admin login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Code     string `json:"code"`
}

// Login authenticates an admin and issues a JWT. Accounts enrolled in
// TOTP must complete the second step via LoginTOTP instead.
func (h *AuthHandler) Login(c *gin.Context) {
	admin, ok := h.verifyCredentials(c)
	if !ok {
		return
	}

	if strings.TrimSpace(admin.TOTPSecret) != "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "mfa required", "mfa": "totp"})
		return
	}

	h.respondWithAdminToken(c, admin)
}

// LoginTOTP completes login for TOTP-enrolled accounts.
func (h *AuthHandler) LoginTOTP(c *gin.Context) {
	admin, ok := h.verifyCredentials(c)
	if !ok {
		return
	}

	secret := strings.TrimSpace(admin.TOTPSecret)
	if secret == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "totp not enabled"})
		return
	}

	code := strings.TrimSpace(c.GetString("loginCode"))
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}
	if !security.ValidateTOTPCode(code, secret) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid code"})
		return
	}

	h.respondWithAdminToken(c, admin)
}

// Logout drops the caller's editing session. The JWT itself simply
// expires; there is no server-side token blacklist.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := readAdminToken(c); token != "" && h.sessions != nil {
		h.sessions.Drop(token)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// verifyCredentials binds the login body and checks username/password.
// It writes the error response itself and reports ok=false on failure.
func (h *AuthHandler) verifyCredentials(c *gin.Context) (models.Admin, bool) {
	var body loginRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return models.Admin{}, false
	}

	username := strings.TrimSpace(body.Username)
	password := strings.TrimSpace(body.Password)
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return models.Admin{}, false
	}

	var admin models.Admin
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("username = ?", username).
		First(&admin).Error; errFind != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return models.Admin{}, false
	}

	if !admin.Active {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin account is disabled"})
		return models.Admin{}, false
	}

	if !security.CheckPassword(admin.Password, password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return models.Admin{}, false
	}

	c.Set("loginCode", strings.TrimSpace(body.Code))
	return admin, true
}

// respondWithAdminToken issues the signed JWT response.
func (h *AuthHandler) respondWithAdminToken(c *gin.Context, admin models.Admin) {
	token, errSign := security.GenerateAdminToken(h.jwtCfg.Secret, admin.ID, admin.Username, h.jwtCfg.TokenExpiry)
	if errSign != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign token failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"username": admin.Username,
	})
}
