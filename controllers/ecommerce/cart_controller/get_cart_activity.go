package cart_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// GetCartActivity godoc
// @Summary Current open cart of the session
// @Tags Storefront - Cart
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.AbandonedCart}
// @Router /cart/activity [get]
func GetCartActivity(c *gin.Context) {
	sid, ok := helpers.CartSessionID(c)
	if !ok {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "No cart session", nil))
		return
	}

	cart, err := services.GetOpenCart(c.Request.Context(), sid)
	if err != nil {
		helpers.RespondError(c, err, "cart.activity", "Failed to fetch cart")
		return
	}
	if cart == nil {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "No open cart", nil))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart retrieved successfully", cart))
}
