package item_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetItemByID godoc
// @Summary Get item
// @Tags Admin - Items
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} models.ApiResponse{data=models.Item}
// @Failure 404 {object} models.ApiResponse "Item not found"
// @Router /admin/items/{id} [get]
func GetItemByID(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := services.GetAdminItem(c.Request.Context(), id)
	if err != nil {
		helpers.RespondError(c, err, "admin.item", "Failed to fetch item")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Item retrieved successfully", item))
}
