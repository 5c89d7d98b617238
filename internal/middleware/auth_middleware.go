package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/alumnihub/internal/pkg/apperrors"
	"github.com/yigit/alumnihub/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextMemberID = "memberID"
	ContextEmail    = "email"
)

// AuthMiddleware authenticates requests with bearer tokens from the identity provider
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Set(ContextMemberID, claims.MemberID())
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// MemberID returns the authenticated member id. It aborts with 401 and
// returns false when JWTAuth did not run.
func MemberID(c *gin.Context) (string, bool) {
	id := c.GetString(ContextMemberID)
	if id == "" {
		HandleAPIError(c, apperrors.ErrUnauthorized)
		return "", false
	}
	return id, true
}
