package shipping_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetShippingInfo godoc
// @Summary Delivery zones and fees
// @Tags Storefront - Shipping
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.ShippingInfoResponse}
// @Router /store/shipping [get]
func GetShippingInfo(c *gin.Context) {
	settings, err := services.LoadShippingSettings(c.Request.Context(), config.DB)
	if err != nil {
		helpers.RespondError(c, err, "store.shipping", "Failed to load shipping settings")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Shipping info retrieved successfully", settings.ToInfo()))
}
