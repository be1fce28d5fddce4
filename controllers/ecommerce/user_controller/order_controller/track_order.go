package order_controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// TrackOrder godoc
// @Summary Guest order lookup
// @Description Finds an order by its number and the email it was placed with.
// @Tags Storefront - Orders
// @Produce json
// @Param number query string true "Order number (OB-YYMMDD-XXXXXX)"
// @Param email query string true "Customer email"
// @Success 200 {object} models.ApiResponse{data=models.Order}
// @Failure 404 {object} models.ApiResponse "Order not found"
// @Router /orders/track [get]
func TrackOrder(c *gin.Context) {
	number := strings.TrimSpace(c.Query("number"))
	email := strings.TrimSpace(c.Query("email"))
	if number == "" || email == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "number and email are required"))
		return
	}

	order, err := services.TrackOrder(c.Request.Context(), number, email)
	if err != nil {
		helpers.RespondError(c, err, "order.track", "Failed to look up order")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Order retrieved successfully", order))
}
