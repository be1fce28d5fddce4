package cart_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// QuoteCart godoc
// @Summary Price a cart for checkout
// @Description Prices lines from the catalog (client prices are ignored) and applies shipping, coupon and tax.
// @Tags Storefront - Cart
// @Accept json
// @Produce json
// @Param request body models.QuoteRequest true "Cart lines, zone and optional coupon"
// @Success 200 {object} models.ApiResponse{data=services.Quote}
// @Failure 400 {object} models.ApiResponse "Empty cart or unknown zone"
// @Failure 422 {object} models.ApiResponse "Unavailable item or invalid coupon"
// @Router /cart/quote [post]
func QuoteCart(c *gin.Context) {
	var req models.QuoteRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	quote, err := services.QuoteCart(c.Request.Context(), req)
	if err != nil {
		helpers.RespondError(c, err, "cart.quote", "Failed to price cart")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Quote calculated", quote))
}
