package order_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/services"
)

// DownloadOrderInvoicePDF godoc
// @Summary Download order invoice
// @Tags Admin - Orders
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {file} file "Invoice PDF"
// @Failure 404 {object} models.ApiResponse "Order not found"
// @Router /admin/orders/{id}/invoice [get]
func DownloadOrderInvoicePDF(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := services.GetOrder(c.Request.Context(), id)
	if err != nil {
		helpers.RespondError(c, err, "admin.invoice", "Failed to fetch order")
		return
	}

	pdf, err := services.GenerateInvoicePDF(order)
	if err != nil {
		helpers.RespondError(c, err, "admin.invoice", "Failed to generate invoice")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="invoice-`+order.OrderNumber+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
