package ecommerce_routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/ecommerce/auth_controller"
	"github.com/online-bazar/bazar-backend/middleware"
)

func SetupAuthRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		// Credential endpoints are rate limited per IP
		limited := auth.Group("")
		limited.Use(middleware.RateLimiter(10, time.Minute))
		limited.POST("/register", auth_controller.Register)
		limited.POST("/login", auth_controller.Login)

		auth.POST("/logout", auth_controller.Logout)

		// Google OAuth
		auth.GET("/google", auth_controller.GoogleLogin)
		auth.GET("/google/callback", auth_controller.GoogleCallback)
	}
}
