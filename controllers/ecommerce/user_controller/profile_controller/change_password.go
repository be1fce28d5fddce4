package profile_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/middleware"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// ChangePassword godoc
// @Summary Change password
// @Tags User - Profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse "Current password is wrong"
// @Router /user/password [post]
func ChangePassword(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	var req models.ChangePasswordRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	if err := services.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		helpers.RespondError(c, err, "user.password", "Failed to change password")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Password changed", nil))
}
