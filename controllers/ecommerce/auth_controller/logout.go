package auth_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/middleware"
	"github.com/online-bazar/bazar-backend/models"
)

// Logout godoc
// @Summary Logout user
// @Description Clears the auth_token cookie.
// @Tags Auth
// @Produce json
// @Success 200 {object} models.ApiResponse "Logged out"
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	clearCookie(c, middleware.AuthCookie)
	clearCookie(c, oauthStateCookie)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Logged out", nil))
}
