package order_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/middleware"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetOrderDetails godoc
// @Summary Get one of my orders
// @Tags User - Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} models.ApiResponse{data=models.Order}
// @Failure 404 {object} models.ApiResponse "Order not found"
// @Router /user/orders/{id} [get]
func GetOrderDetails(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}
	orderID, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := services.GetUserOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		helpers.RespondError(c, err, "user.order", "Failed to fetch order")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order retrieved successfully", order))
}
