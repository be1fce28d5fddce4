package ecommerce_routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/ecommerce/analytics_controller"
	"github.com/online-bazar/bazar-backend/controllers/ecommerce/blog_controller"
	"github.com/online-bazar/bazar-backend/controllers/ecommerce/registration_controller"
	"github.com/online-bazar/bazar-backend/middleware"
)

func SetupContentRoutes(rg *gin.RouterGroup) {
	rg.GET("/blog", blog_controller.GetPosts)
	rg.GET("/blog/:slug", blog_controller.GetPostBySlug)

	rg.POST("/registrations", middleware.RateLimiter(5, time.Minute), registration_controller.CreateRegistration)

	rg.POST("/analytics/events", middleware.OptionalAuth(), analytics_controller.TrackEvent)
}
