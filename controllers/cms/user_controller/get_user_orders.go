package user_controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetUserOrders godoc
// @Summary Orders of a user
// @Tags Admin - Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.Order,meta=models.Pagination}
// @Router /admin/users/{id}/orders [get]
func GetUserOrders(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	orders, total, page, limit, err := services.ListUserOrders(c.Request.Context(), id, page, limit)
	if err != nil {
		helpers.RespondError(c, err, "admin.user.orders", "Failed to fetch orders")
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Orders retrieved successfully", orders,
		models.NewPagination(page, limit, total)))
}
