package ecommerce_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/ecommerce/cart_controller"
	"github.com/online-bazar/bazar-backend/controllers/ecommerce/coupon_controller"
	"github.com/online-bazar/bazar-backend/controllers/ecommerce/payment_controller"
	"github.com/online-bazar/bazar-backend/controllers/ecommerce/user_controller/order_controller"
	"github.com/online-bazar/bazar-backend/middleware"
)

// SetupCartRoutes wires the guest-friendly cart and checkout endpoints.
// OptionalAuth attaches the user when a session cookie is present.
func SetupCartRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	cart.Use(middleware.OptionalAuth())
	{
		cart.POST("/activity", cart_controller.PostCartActivity)
		cart.GET("/activity", cart_controller.GetCartActivity)
		cart.POST("/quote", cart_controller.QuoteCart)
		cart.GET("/stream", cart_controller.CartStream)
		cart.GET("/recover/:token", cart_controller.RecoverCart)
	}

	orders := rg.Group("/orders")
	{
		orders.POST("", middleware.OptionalAuth(), order_controller.CreateOrder)
		orders.GET("/track", order_controller.TrackOrder)
	}

	rg.POST("/coupons/validate", coupon_controller.ValidateCoupon)
	rg.POST("/payments/stripe/webhook", payment_controller.StripeWebhook)
}
