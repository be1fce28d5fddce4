package order_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetOrderDetailsByID godoc
// @Summary Get order details
// @Tags Admin - Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} models.ApiResponse{data=models.Order}
// @Failure 404 {object} models.ApiResponse "Order not found"
// @Router /admin/orders/{id} [get]
func GetOrderDetailsByID(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := services.GetOrder(c.Request.Context(), id)
	if err != nil {
		helpers.RespondError(c, err, "admin.order", "Failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order retrieved successfully", order))
}
