package registration_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// UpdateRegistrationStatus godoc
// @Summary Confirm or cancel a registration
// @Tags Admin - Registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Registration ID"
// @Param request body models.UpdateRegistrationStatusRequest true "New status"
// @Success 200 {object} models.ApiResponse{data=models.Registration}
// @Router /admin/registrations/{id}/status [patch]
func UpdateRegistrationStatus(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateRegistrationStatusRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	reg, err := services.SetRegistrationStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		helpers.RespondError(c, err, "admin.registration.status", "Failed to update registration")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Registration updated", reg))
}
