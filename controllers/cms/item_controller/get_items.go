package item_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetItems godoc
// @Summary List items
// @Description All items regardless of status. low_stock=N keeps items with stock at or below N.
// @Tags Admin - Items
// @Produce json
// @Security BearerAuth
// @Param q query string false "Name or slug"
// @Param status query string false "active|draft|archived"
// @Param category_id query string false "Category ID"
// @Param low_stock query int false "Stock threshold"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.Item,meta=models.Pagination}
// @Router /admin/items [get]
func GetItems(c *gin.Context) {
	var f services.AdminItemFilter
	if !helpers.BindQuery(c, &f) {
		return
	}

	items, total, page, limit, err := services.ListAdminItems(c.Request.Context(), f)
	if err != nil {
		helpers.RespondError(c, err, "admin.items", "Failed to fetch items")
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Items retrieved successfully", items,
		models.NewPagination(page, limit, total)))
}
