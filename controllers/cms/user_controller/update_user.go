package user_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// UpdateUser godoc
// @Summary Change a user's role or ban state
// @Description Admins cannot demote or ban themselves. Banning requires a reason.
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body models.AdminUpdateUserRequest true "Role and status"
// @Success 200 {object} models.ApiResponse{data=models.UserResponse}
// @Failure 403 {object} models.ApiResponse "Cannot change own account"
// @Router /admin/users/{id} [patch]
func UpdateUser(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := helpers.AdminIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	var req models.AdminUpdateUserRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	user, err := services.AdminUpdateUser(c.Request.Context(), actorID, id, req)
	if err != nil {
		helpers.RespondError(c, err, "admin.user.update", "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "User updated successfully", user.ToResponse()))
}
