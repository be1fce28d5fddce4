package cart_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// RemindCart godoc
// @Summary Send the next reminder now
// @Description Sends the next wave immediately. Mail failures are recorded on the cart with backoff, as the scheduler does.
// @Tags Admin - Carts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart ID"
// @Success 200 {object} models.ApiResponse{data=models.AbandonedCart}
// @Failure 400 {object} models.ApiResponse "Cart is closed or has no email"
// @Failure 502 {object} models.ApiResponse "Mail provider failed"
// @Router /admin/carts/{id}/remind [post]
func RemindCart(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}

	cart, err := services.RemindCartNow(c.Request.Context(), id)
	if err != nil {
		if cart != nil && helpers.StatusFor(err) == http.StatusInternalServerError {
			config.Log.Warn("[admin.cart.remind] reminder failed", "error", err, "cart_id", id.String())
			c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to send reminder"))
			return
		}
		helpers.RespondError(c, err, "admin.cart.remind", "Failed to send reminder")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Reminder sent", cart))
}
