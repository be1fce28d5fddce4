package payment_controller

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
)

const maxWebhookBody = 65536

// StripeWebhook godoc
// @Summary Stripe webhook
// @Description Verifies the Stripe-Signature header and applies payment_intent.succeeded and payment_intent.payment_failed to the matching order.
// @Tags Payments
// @Accept json
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse "Bad signature"
// @Router /payments/stripe/webhook [post]
func StripeWebhook(c *gin.Context) {
	provider := services.GetPayments()
	if provider == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Card payments are not configured"))
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Failed to read body"))
		return
	}

	event, err := provider.ParseWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		config.Log.Warn("[stripe] rejected webhook", "error", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid webhook"))
		return
	}

	if err := services.HandlePaymentEvent(c.Request.Context(), event); err != nil {
		config.Log.Error("[stripe] failed to apply webhook", "error", err, "type", event.Type, "intent", event.IntentID)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to process webhook"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Webhook processed", nil))
}
