package order_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetOrders godoc
// @Summary Get all orders
// @Description Admin order list with status, search, zone, payment status and date range filters.
// @Tags Admin - Orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Order status"
// @Param q query string false "Order number, customer name, email or phone"
// @Param zone query string false "Delivery zone"
// @Param payment_status query string false "unpaid|paid|failed|refunded"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD)"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.Order,meta=models.Pagination}
// @Router /admin/orders [get]
func GetOrders(c *gin.Context) {
	var f models.OrderFilter
	if !helpers.BindQuery(c, &f) {
		return
	}

	orders, total, page, limit, err := services.ListOrders(c.Request.Context(), f)
	if err != nil {
		helpers.RespondError(c, err, "admin.orders", "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Orders retrieved successfully", orders,
		models.NewPagination(page, limit, total)))
}
