package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
	"github.com/online-bazar/bazar-backend/utils"
)

const AuthCookie = "auth_token"

// tokenFromRequest reads the session token from the auth cookie, falling back
// to the Authorization header.
func tokenFromRequest(c *gin.Context) (string, error) {
	if cookie, err := c.Cookie(AuthCookie); err == nil && cookie != "" {
		return cookie, nil
	}
	return utils.ExtractTokenFromHeader(c.GetHeader("Authorization"))
}

func setClaims(c *gin.Context, claims *services.Claims) bool {
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return false
	}
	c.Set("userID", id)
	c.Set("userEmail", claims.Email)
	c.Set("userName", claims.Name)
	c.Set("userRole", claims.Role)
	return true
}

// AuthMiddleware validates JWT token from cookie or Authorization header
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := tokenFromRequest(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Authentication required"))
			return
		}

		claims, err := services.VerifyToken(token)
		if err != nil || !setClaims(c, claims) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Invalid or expired token"))
			return
		}

		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and lets
// anonymous requests through.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := tokenFromRequest(c); err == nil {
			if claims, err := services.VerifyToken(token); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetUserIDPtr returns the authenticated user id, or nil for guests.
func GetUserIDPtr(c *gin.Context) *uuid.UUID {
	if id, ok := GetUserIDFromContext(c); ok {
		return &id
	}
	return nil
}
