package cms_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/cms/report_controller"
)

func SetupReportRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/overview", report_controller.GetOverview)
		reports.GET("/sales", report_controller.GetSales)
		reports.GET("/top-items", report_controller.GetTopItems)
		reports.GET("/orders-by-status", report_controller.GetOrdersByStatus)
		reports.GET("/zones", report_controller.GetZones)
	}
}
