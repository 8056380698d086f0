package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/udyogerp/backend/internal/infrastructure/auth"
	"github.com/udyogerp/backend/internal/interfaces/http/dto"
)

// Context keys set by the JWT middleware
const (
	ContextKeyJWTClaims   = "jwt_claims"
	ContextKeyJWTTenantID = "jwt_tenant_id"
	ContextKeyJWTUserID   = "jwt_user_id"
)

// JWTConfig holds JWT middleware configuration
type JWTConfig struct {
	// SkipPaths are exact request paths that bypass authentication
	SkipPaths []string
}

// DefaultJWTConfig returns the default middleware configuration
func DefaultJWTConfig() JWTConfig {
	return JWTConfig{
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
		},
	}
}

// JWTAuth returns a middleware that validates Bearer tokens using the default config
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthWithConfig(jwtService, DefaultJWTConfig())
}

// JWTAuthWithConfig returns a middleware that validates Bearer tokens.
// On success it stores the claims, tenant ID, and user ID in the gin context.
func JWTAuthWithConfig(jwtService *auth.JWTService, cfg JWTConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing Authorization header")
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Authorization header must use Bearer scheme")
			return
		}

		tokenString := strings.TrimSpace(header[len(bearerPrefix):])
		if tokenString == "" {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Empty bearer token")
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrCodeTokenExpired, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid token")
			return
		}

		tenantID, err := claims.TenantUUID()
		if err != nil {
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid tenant in token")
			return
		}

		c.Set(ContextKeyJWTClaims, claims)
		c.Set(ContextKeyJWTTenantID, tenantID)
		c.Set(ContextKeyJWTUserID, claims.UserID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	requestID := c.GetString("request_id")
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// GetJWTClaims returns the validated claims from the gin context
func GetJWTClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ContextKeyJWTClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// GetJWTTenantID returns the authenticated tenant ID from the gin context
func GetJWTTenantID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextKeyJWTTenantID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetJWTUserID returns the authenticated user ID from the gin context
func GetJWTUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextKeyJWTUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
