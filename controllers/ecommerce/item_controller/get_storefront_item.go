package item_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetStorefrontItem godoc
// @Summary Get item detail
// @Description Returns an active item by slug or id with its review summary and related items. Each call counts a view.
// @Tags Storefront - Items
// @Produce json
// @Param slug path string true "Item slug or id"
// @Success 200 {object} models.ApiResponse{data=models.ItemDetailResponse}
// @Failure 404 {object} models.ApiResponse "Item not found"
// @Router /store/items/{slug} [get]
func GetStorefrontItem(c *gin.Context) {
	detail, err := services.GetStorefrontItem(c.Request.Context(), c.Param("slug"))
	if err != nil {
		helpers.RespondError(c, err, "store.item", "Failed to fetch item")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Item retrieved successfully", detail))
}
