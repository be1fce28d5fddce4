package admin_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetAdminMe godoc
// @Summary Current admin
// @Description Lets the dashboard confirm the session still has admin rights.
// @Tags Admin - Activity
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.UserResponse}
// @Failure 403 {object} models.ApiResponse "Not an admin"
// @Router /admin/me [get]
func GetAdminMe(c *gin.Context) {
	adminID, ok := helpers.AdminIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	user, err := services.GetUser(c.Request.Context(), adminID)
	if err != nil {
		helpers.RespondError(c, err, "admin.me", "Failed to fetch admin")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Authenticated", user.ToResponse()))
}
