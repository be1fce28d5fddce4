package cart_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/middleware"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// PostCartActivity godoc
// @Summary Report a cart snapshot
// @Description Reconciles the browser cart with the session's abandoned-cart record. Issues the bazar_cart_sid cookie when missing. Action is one of created, updated, adopted, unchanged, deleted, noop.
// @Tags Storefront - Cart
// @Accept json
// @Produce json
// @Param request body models.CartActivityRequest true "Cart snapshot"
// @Success 200 {object} models.ApiResponse{data=models.CartActivityResponse}
// @Failure 400 {object} models.ApiResponse "Invalid request"
// @Router /cart/activity [post]
func PostCartActivity(c *gin.Context) {
	var req models.CartActivityRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	sid, err := helpers.EnsureCartSession(c)
	if err != nil {
		config.Log.Error("[cart.activity] failed to issue session", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to start cart session"))
		return
	}

	result, err := services.RecordCartActivity(c.Request.Context(), services.CartActivityInput{
		SessionID: sid,
		UserID:    middleware.GetUserIDPtr(c),
		Items:     req.Items,
		Customer:  req.Customer,
		Zone:      req.Zone,
	})
	if err != nil {
		helpers.RespondError(c, err, "cart.activity", "Failed to record cart activity")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart activity recorded", models.CartActivityResponse{
		Action: result.Action,
		Cart:   result.Cart,
	}))
}
