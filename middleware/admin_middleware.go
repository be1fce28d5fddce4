package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"gorm.io/gorm"
)

// AdminMiddleware must run after AuthMiddleware. The role is read from the
// database so demotions and bans apply before the token expires.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Authentication required"))
			return
		}

		ctx, cancel := config.WithTimeout()
		defer cancel()

		var user models.User
		if err := config.DB.WithContext(ctx).
			Select("id", "email", "role", "status").
			First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, "Account not found"))
				return
			}
			config.Log.Error("[auth.admin] failed to load user", "user_id", userID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to verify account"))
			return
		}

		if user.Status == models.UserStatusBanned {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse(c, "Account is banned"))
			return
		}
		if !user.IsAdmin() {
			config.Log.Warn("[auth.admin] non-admin attempted admin route", "user_id", userID, "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse(c, "Admin access required"))
			return
		}

		c.Set("adminID", user.ID)
		c.Set("adminEmail", user.Email)
		c.Set("adminRole", user.Role)
		c.Next()
	}
}
