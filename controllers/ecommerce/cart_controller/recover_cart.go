package cart_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// RecoverCart godoc
// @Summary Open a cart recovery link
// @Description Resolves the emailed recovery token, returns the saved lines and re-binds the cart cookie to the recovered session.
// @Tags Storefront - Cart
// @Produce json
// @Param token path string true "Recovery token"
// @Success 200 {object} models.ApiResponse{data=models.RecoveredCartResponse}
// @Failure 404 {object} models.ApiResponse "Invalid or expired link"
// @Router /cart/recover/{token} [get]
func RecoverCart(c *gin.Context) {
	cart, err := services.RecoverCart(c.Request.Context(), c.Param("token"))
	if err != nil {
		helpers.RespondError(c, err, "cart.recover", "Failed to recover cart")
		return
	}

	if helpers.ValidCartSessionID(cart.SessionID) {
		helpers.SetCartSession(c, cart.SessionID)
	}

	resp := models.RecoveredCartResponse{
		Lines:    cart.Lines,
		Subtotal: cart.Subtotal,
		Zone:     cart.Zone,
	}
	resp.Customer.Name = cart.CustomerName
	resp.Customer.Email = cart.CustomerEmail
	resp.Customer.Phone = cart.CustomerPhone

	config.Log.Info("[cart.recover] recovery link opened", "cart_id", cart.ID.String())
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart recovered", resp))
}
