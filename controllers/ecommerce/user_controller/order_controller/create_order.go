package order_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/middleware"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
	"github.com/online-bazar/bazar-backend/utils"
)

// CreateOrder godoc
// @Summary Place an order
// @Description Guest or signed-in checkout. Prices lines from the catalog, reserves stock and consumes the coupon in one transaction. Card orders return a Stripe client secret.
// @Tags Storefront - Orders
// @Accept json
// @Produce json
// @Param request body models.CreateOrderRequest true "Order"
// @Success 201 {object} models.ApiResponse{data=models.CreateOrderResponse}
// @Failure 400 {object} models.ApiResponse "Empty cart or invalid input"
// @Failure 409 {object} models.ApiResponse "Insufficient stock"
// @Failure 422 {object} models.ApiResponse "Unavailable item or invalid coupon"
// @Router /orders [post]
func CreateOrder(c *gin.Context) {
	// Step 1: Bind request
	var req models.CreateOrderRequest
	if !helpers.BindJSON(c, &req) {
		return
	}

	// Step 2: Resolve caller
	sid, _ := helpers.CartSessionID(c)

	// Step 3: Place order
	result, err := services.PlaceOrder(c.Request.Context(), services.PlaceOrderInput{
		Request:   req,
		UserID:    middleware.GetUserIDPtr(c),
		SessionID: sid,
		ClientIP:  utils.GetClientIP(c),
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		helpers.RespondError(c, err, "order.create", "Failed to place order")
		return
	}

	config.Log.Info("[order.create] order placed",
		"order_number", result.Order.OrderNumber,
		"total", result.Order.Total,
		"payment_method", result.Order.PaymentMethod,
	)
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Order placed successfully", models.CreateOrderResponse{
		Order:        result.Order,
		ClientSecret: result.ClientSecret,
	}))
}
