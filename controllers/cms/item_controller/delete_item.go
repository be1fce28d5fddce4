package item_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

type deleteItemResponse struct {
	Item     *models.Item `json:"item"`
	Archived bool         `json:"archived"`
}

// DeleteItem godoc
// @Summary Delete an item
// @Description Items referenced by orders are archived instead of deleted.
// @Tags Admin - Items
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse "Item not found"
// @Router /admin/items/{id} [delete]
func DeleteItem(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}

	item, archived, err := services.DeleteItem(c.Request.Context(), id)
	if err != nil {
		helpers.RespondError(c, err, "admin.item.delete", "Failed to delete item")
		return
	}

	msg := "Item deleted successfully"
	if archived {
		msg = "Item is referenced by orders and was archived"
	}
	config.Log.Info("[admin.item.delete] "+msg, "item_id", id.String())
	c.JSON(http.StatusOK, models.SuccessResponse(c, msg, deleteItemResponse{Item: item, Archived: archived}))
}
