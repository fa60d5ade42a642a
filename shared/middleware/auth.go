package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"github.com/pavitra93/go-hr-admin-panel/shared/utils"
	"github.com/sirupsen/logrus"
)

const (
	userInfoKey       = "user_info"
	tokenKey          = "access_token"
	tokenExpiresAtKey = "access_token_expires_at"
)

// AuthMiddleware handles JWT token validation
type AuthMiddleware struct {
	issuer *utils.TokenIssuer
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(issuer *utils.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{issuer: issuer}
}

// RequireAuth middleware validates JWT tokens
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			utils.UnauthorizedResponse(c, "Authorization token required")
			c.Abort()
			return
		}

		claims, err := am.issuer.Parse(tokenString)
		if err != nil {
			logrus.WithError(err).Debug("Rejected access token")
			utils.UnauthorizedResponse(c, "Invalid token")
			c.Abort()
			return
		}

		if utils.IsTokenRevoked(c.Request.Context(), tokenString) {
			utils.UnauthorizedResponse(c, "Token has been revoked")
			c.Abort()
			return
		}

		info, err := claims.UserInfo()
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set(userInfoKey, info)
		c.Set("user_id", info.UserID)
		c.Set("email", info.Email)
		c.Set("is_admin", info.IsAdmin)
		if info.TenantID != nil {
			c.Set("tenant_id", info.TenantID.String())
		}
		c.Set(tokenKey, tokenString)
		if claims.ExpiresAt != nil {
			c.Set(tokenExpiresAtKey, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// RequireAdmin middleware allows only platform admins through
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := GetUserInfoFromContext(c)
		if err != nil {
			utils.UnauthorizedResponse(c, "User not found in context")
			c.Abort()
			return
		}

		if !info.IsAdminUser() {
			utils.ForbiddenResponse(c, "Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractToken extracts the JWT token from the Authorization header
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return authHeader
}

// GetUserInfoFromContext extracts the caller placed in the context by RequireAuth
func GetUserInfoFromContext(c *gin.Context) (*models.UserInfo, error) {
	value, exists := c.Get(userInfoKey)
	if !exists {
		return nil, fmt.Errorf("user_info not found in context")
	}

	info, ok := value.(*models.UserInfo)
	if !ok {
		return nil, fmt.Errorf("unexpected user_info type %T", value)
	}
	return info, nil
}

// GetTenantIDFromContext extracts tenant ID from the Gin context
func GetTenantIDFromContext(c *gin.Context) (uuid.UUID, error) {
	tenantIDStr := c.GetString("tenant_id")
	if tenantIDStr == "" {
		return uuid.Nil, fmt.Errorf("tenant_id not found in context")
	}
	return uuid.Parse(tenantIDStr)
}

// GetTokenFromContext returns the raw token and its expiry, used by logout
func GetTokenFromContext(c *gin.Context) (string, time.Time) {
	token := c.GetString(tokenKey)
	expiresAt, _ := c.Get(tokenExpiresAtKey)
	exp, _ := expiresAt.(time.Time)
	return token, exp
}

// SetUserInfo places info in the context. Used by tests and internal callers.
func SetUserInfo(c *gin.Context, info *models.UserInfo) {
	c.Set(userInfoKey, info)
}
