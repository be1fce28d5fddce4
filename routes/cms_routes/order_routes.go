package cms_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/cms/order_controller"
)

func SetupOrderRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", order_controller.GetOrders)
		orders.GET("/:id", order_controller.GetOrderDetailsByID)
		orders.PATCH("/:id/status", order_controller.UpdateOrderStatus)

		// Invoices
		orders.GET("/:id/invoice", order_controller.DownloadOrderInvoicePDF)
		orders.POST("/:id/invoice/send", order_controller.SendOrderInvoicePDF)
	}
}
