package cart_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// DeleteCart godoc
// @Summary Delete an abandoned cart
// @Tags Admin - Carts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart ID"
// @Success 200 {object} models.ApiResponse
// @Router /admin/carts/{id} [delete]
func DeleteCart(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}

	cart, err := services.DeleteAbandonedCart(c.Request.Context(), id)
	if err != nil {
		helpers.RespondError(c, err, "admin.cart.delete", "Failed to delete cart")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart deleted", cart))
}
