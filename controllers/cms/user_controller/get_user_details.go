package user_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetUserDetails godoc
// @Summary Get user details
// @Description User profile with order count and lifetime value.
// @Tags Admin - Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.ApiResponse{data=models.AdminUserDetail}
// @Failure 404 {object} models.ApiResponse "User not found"
// @Router /admin/users/{id} [get]
func GetUserDetails(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := services.GetUserDetail(c.Request.Context(), id)
	if err != nil {
		helpers.RespondError(c, err, "admin.user", "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "User retrieved successfully", detail))
}
