package item_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// UpdateItemStock godoc
// @Summary Set or adjust stock
// @Description Send either stock (absolute) or delta (relative). Deltas never take stock below zero.
// @Tags Admin - Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body models.UpdateStockRequest true "Stock change"
// @Success 200 {object} models.ApiResponse{data=models.Item}
// @Failure 409 {object} models.ApiResponse "Stock would go negative"
// @Router /admin/items/{id}/stock [patch]
func UpdateItemStock(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateStockRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	item, err := services.UpdateStock(c.Request.Context(), id, req)
	if err != nil {
		helpers.RespondError(c, err, "admin.item.stock", "Failed to update stock")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Stock updated", item))
}
