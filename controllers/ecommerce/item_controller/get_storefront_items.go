package item_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetStorefrontItems godoc
// @Summary List storefront items
// @Description Active items with category (id or slug, sub-categories included), text, price, stock, featured and tag filters.
// @Tags Storefront - Items
// @Produce json
// @Param category query string false "Category id or slug"
// @Param q query string false "Search name and description"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param in_stock query bool false "Only items in stock"
// @Param featured query bool false "Only featured items"
// @Param tag query string false "Tag"
// @Param sort query string false "newest|price_asc|price_desc|popular|rating"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 50)" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.Item}
// @Failure 400 {object} models.ApiResponse "Invalid filters"
// @Router /store/items [get]
func GetStorefrontItems(c *gin.Context) {
	var f models.ItemFilter
	if !helpers.BindQuery(c, &f) {
		return
	}

	items, total, page, limit, err := services.ListStorefrontItems(c.Request.Context(), f)
	if err != nil {
		helpers.RespondError(c, err, "store.items", "Failed to fetch items")
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Items retrieved successfully", items,
		models.NewPagination(page, limit, total)))
}
