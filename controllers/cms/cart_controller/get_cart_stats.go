package cart_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetCartStats godoc
// @Summary Abandoned-cart stats
// @Description Counts per status, recovery rate and value at risk of open carts.
// @Tags Admin - Carts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.AbandonedCartStats}
// @Router /admin/carts/stats [get]
func GetCartStats(c *gin.Context) {
	stats, err := services.AbandonedCartStats(c.Request.Context())
	if err != nil {
		helpers.RespondError(c, err, "admin.carts.stats", "Failed to compute cart stats")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart stats retrieved successfully", stats))
}
