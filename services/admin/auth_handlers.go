package main

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pavitra93/go-hr-admin-panel/shared/forms"
	"github.com/pavitra93/go-hr-admin-panel/shared/middleware"
	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginResponse is returned by a successful login
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        *models.User `json:"user"`
}

// handleLogin exchanges email and password for an access token
func handleLogin(db *gorm.DB, issuer *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form forms.LoginForm
		if !bindJSON(c, &form) {
			return
		}
		if errs, ok := form.Ok(); !ok {
			utils.ValidationErrorResponse(c, errs)
			return
		}

		var user models.User
		err := db.WithContext(c.Request.Context()).Where("LOWER(email) = LOWER(?)", form.Email).First(&user).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, err, "Failed to fetch user")
			return
		}
		if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)) != nil {
			utils.ValidationErrorResponse(c, map[string]string{"email": "These credentials do not match our records."})
			return
		}

		token, expiresAt, err := issuer.Issue(&user)
		if err != nil {
			respondError(c, err, "Failed to issue token")
			return
		}

		now := time.Now().UTC()
		if err := db.WithContext(c.Request.Context()).Model(&user).Update("last_login_at", now).Error; err != nil {
			middleware.LoggerFromContext(c).WithError(err).Warn("Failed to record last login")
		}

		utils.OKResponse(c, "Login successful", LoginResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresAt:   expiresAt,
			User:        &user,
		})
	}
}

// handleLogout revokes the current token until it expires
func handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, expiresAt := middleware.GetTokenFromContext(c)
		if err := utils.RevokeToken(c.Request.Context(), token, time.Until(expiresAt)); err != nil {
			if errors.Is(err, utils.ErrCacheUnavailable) {
				utils.ServiceUnavailableResponse(c, "Token revocation is unavailable")
				return
			}
			respondError(c, err, "Failed to revoke token")
			return
		}

		utils.OKResponse(c, "Logged out successfully", nil)
	}
}

// handleMe returns the authenticated user
func handleMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := caller(c)
		if !ok {
			return
		}

		var user models.User
		if err := db.WithContext(c.Request.Context()).Preload("Tenant").First(&user, info.UserID).Error; err != nil {
			respondError(c, err, "Failed to fetch user")
			return
		}

		utils.OKResponse(c, "User retrieved successfully", user)
	}
}
