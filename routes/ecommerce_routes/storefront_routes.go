package ecommerce_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/ecommerce/category_controller"
	"github.com/online-bazar/bazar-backend/controllers/ecommerce/item_controller"
	"github.com/online-bazar/bazar-backend/controllers/ecommerce/shipping_controller"
	"github.com/online-bazar/bazar-backend/middleware"
)

func SetupStorefrontRoutes(rg *gin.RouterGroup) {
	store := rg.Group("/store")
	{
		// ════════════════════════════════════════════════════════════
		// Items
		// ════════════════════════════════════════════════════════════
		store.GET("/items", item_controller.GetStorefrontItems)
		store.GET("/items/:slug", item_controller.GetStorefrontItem)
		store.GET("/items/:slug/reviews", item_controller.GetItemReviews)
		store.POST("/items/:slug/reviews", middleware.AuthMiddleware(), item_controller.CreateItemReview)

		// ════════════════════════════════════════════════════════════
		// Categories
		// ════════════════════════════════════════════════════════════
		store.GET("/categories", category_controller.GetCategories)
		store.GET("/categories/:slug", category_controller.GetCategoryBySlug)

		store.GET("/shipping", shipping_controller.GetShippingInfo)
	}
}
