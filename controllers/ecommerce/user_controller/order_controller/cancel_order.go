package order_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/middleware"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// CancelOrder godoc
// @Summary Cancel a pending order
// @Description Only pending orders can be cancelled by the customer. Stock and coupon usage are restored.
// @Tags User - Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body models.CancelOrderRequest true "Reason"
// @Success 200 {object} models.ApiResponse{data=models.Order}
// @Failure 409 {object} models.ApiResponse "Order can no longer be cancelled"
// @Router /user/orders/{id}/cancel [post]
func CancelOrder(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}
	orderID, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.CancelOrderRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	order, err := services.CancelOwnOrder(c.Request.Context(), userID, orderID, req.Reason)
	if err != nil {
		helpers.RespondError(c, err, "user.order.cancel", "Failed to cancel order")
		return
	}

	config.Log.Info("[user.order.cancel] order cancelled", "order_number", order.OrderNumber)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order cancelled", order))
}
