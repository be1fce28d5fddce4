package item_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// UpdateItem godoc
// @Summary Update an item
// @Description Partial update; omitted fields are left alone.
// @Tags Admin - Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body models.UpdateItemRequest true "Fields to change"
// @Success 200 {object} models.ApiResponse{data=models.Item}
// @Failure 404 {object} models.ApiResponse "Item not found"
// @Router /admin/items/{id} [patch]
func UpdateItem(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateItemRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	item, err := services.UpdateItem(c.Request.Context(), id, req)
	if err != nil {
		helpers.RespondError(c, err, "admin.item.update", "Failed to update item")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Item updated successfully", item))
}
