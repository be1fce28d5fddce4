// ════════════════════════════════════════════════════════════
// Path: controllers/ecommerce/user_controller/profile_controller/update_profile.go
// Update authenticated user's profile
// ════════════════════════════════════════════════════════════

package profile_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/middleware"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// UpdateProfile godoc
// @Summary Update user profile
// @Description Update name, phone, avatar, default address and delivery zone. Omitted fields are left alone.
// @Tags User - Profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} models.ApiResponse{data=models.UserResponse}
// @Failure 400 {object} models.ApiResponse "Invalid request"
// @Router /user [patch]
func UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	var req models.UpdateProfileRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	user, err := services.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		helpers.RespondError(c, err, "user.profile", "Failed to update profile")
		return
	}

	config.Log.Info("[user.profile] profile updated", "user_id", userID.String())
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Profile updated successfully", user.ToResponse()))
}
