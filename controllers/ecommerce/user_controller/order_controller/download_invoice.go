package order_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/middleware"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// DownloadInvoice godoc
// @Summary Download the invoice of one of my orders
// @Tags User - Orders
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {file} file "Invoice PDF"
// @Failure 404 {object} models.ApiResponse "Order not found"
// @Router /user/orders/{id}/invoice [get]
func DownloadInvoice(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}
	orderID, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := services.GetUserOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		helpers.RespondError(c, err, "user.invoice", "Failed to fetch order")
		return
	}

	pdf, err := services.GenerateInvoicePDF(order)
	if err != nil {
		helpers.RespondError(c, err, "user.invoice", "Failed to generate invoice")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="invoice-`+order.OrderNumber+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
