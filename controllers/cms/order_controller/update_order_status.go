package order_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// UpdateOrderStatus godoc
// @Summary Update order status
// @Description Moves the order along pending → confirmed → processing → shipped → delivered. Cancelling needs a reason and restores stock and coupon usage.
// @Tags Admin - Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body models.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.ApiResponse{data=models.Order}
// @Failure 409 {object} models.ApiResponse "Transition not allowed"
// @Router /admin/orders/{id}/status [patch]
func UpdateOrderStatus(c *gin.Context) {
	// Step 1: Parse input
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateOrderStatusRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	// Step 2: Transition
	order, err := services.TransitionOrder(c.Request.Context(), id, req.Status, req.Reason)
	if err != nil {
		helpers.RespondError(c, err, "admin.order.status", "Failed to update order status")
		return
	}

	config.Log.Info("[admin.order.status] status updated", "order_number", order.OrderNumber, "status", order.Status)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order status updated", order))
}
