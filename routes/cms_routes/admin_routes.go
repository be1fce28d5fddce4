package cms_routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/cms/admin_controller"
	"github.com/online-bazar/bazar-backend/middleware"
)

const (
	adminRateLimit  = 300
	adminRateWindow = time.Minute
)

// SetupAdminRoutes mounts the back office under /admin. Every route requires
// a signed-in, non-banned admin; writes are recorded in the activity log.
func SetupAdminRoutes(rg *gin.RouterGroup) {
	// ════════════════════════════════════════════════════════════
	// Base Admin Group (Auth → Admin → Rate Limit → Activity Logging)
	// ════════════════════════════════════════════════════════════
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.AdminMiddleware())
	admin.Use(middleware.RateLimiter(adminRateLimit, adminRateWindow))
	admin.Use(middleware.ActivityLoggingMiddleware())

	admin.GET("/me", admin_controller.GetAdminMe)
	admin.GET("/activity-logs", admin_controller.GetActivityLogs)

	SetupOrderRoutes(admin)
	SetupUserRoutes(admin)
	SetupItemRoutes(admin)
	SetupCategoryRoutes(admin)
	SetupReviewRoutes(admin)
	SetupCouponRoutes(admin)
	SetupBlogRoutes(admin)
	SetupRegistrationRoutes(admin)
	SetupCartRoutes(admin)
	SetupSettingsRoutes(admin)
	SetupReportRoutes(admin)
}
