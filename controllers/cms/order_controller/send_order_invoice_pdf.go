package order_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/controllers/helpers"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

// SendOrderInvoicePDF godoc
// @Summary Email the invoice to the customer
// @Tags Admin - Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse "Order not found"
// @Failure 502 {object} models.ApiResponse "Mail provider failed"
// @Router /admin/orders/{id}/invoice/send [post]
func SendOrderInvoicePDF(c *gin.Context) {
	id, ok := helpers.ParseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	order, err := services.GetOrder(ctx, id)
	if err != nil {
		helpers.RespondError(c, err, "admin.invoice.send", "Failed to fetch order")
		return
	}

	if err := services.SendInvoice(ctx, order); err != nil {
		config.Log.Error("[admin.invoice.send] failed to send invoice", "error", err, "order_number", order.OrderNumber)
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to send invoice email"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Invoice sent to "+order.CustomerEmail, nil))
}
