package settings_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetShippingSettings godoc
// @Summary Get shipping settings
// @Tags Admin - Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.ShippingSettings}
// @Router /admin/settings/shipping [get]
func GetShippingSettings(c *gin.Context) {
	settings, err := services.LoadShippingSettings(c.Request.Context(), config.DB)
	if err != nil {
		helpers.RespondError(c, err, "admin.settings", "Failed to load shipping settings")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Shipping settings retrieved successfully", settings))
}

// UpdateShippingSettings godoc
// @Summary Update shipping settings
// @Description Zone fees and the free-shipping threshold (0 disables it).
// @Tags Admin - Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateShippingRequest true "Fees"
// @Success 200 {object} models.ApiResponse{data=models.ShippingSettings}
// @Router /admin/settings/shipping [patch]
func UpdateShippingSettings(c *gin.Context) {
	var req models.UpdateShippingRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	settings, err := services.UpdateShippingSettings(c.Request.Context(), config.DB, req)
	if err != nil {
		helpers.RespondError(c, err, "admin.settings", "Failed to update shipping settings")
		return
	}

	config.Log.Info("[admin.settings] shipping settings updated",
		"inside_dhaka_fee", settings.InsideDhakaFee,
		"outside_dhaka_fee", settings.OutsideDhakaFee,
		"free_shipping_threshold", settings.FreeShippingThreshold,
	)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Shipping settings updated", settings))
}
