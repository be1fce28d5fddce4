package order_controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/middleware"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetOrders godoc
// @Summary Get order history
// @Description Retrieve all orders for the authenticated user with pagination
// @Tags User - Orders
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.Order,meta=models.Pagination}
// @Failure 401 {object} models.ApiResponse "Unauthorized"
// @Router /user/orders [get]
func GetOrders(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	orders, total, page, limit, err := services.ListUserOrders(c.Request.Context(), userID, page, limit)
	if err != nil {
		helpers.RespondError(c, err, "user.orders", "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Orders retrieved successfully", orders,
		models.NewPagination(page, limit, total)))
}
