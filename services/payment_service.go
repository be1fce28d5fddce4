package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/webhook"
)

const (
	PaymentEventSucceeded = "payment_intent.succeeded"
	PaymentEventFailed    = "payment_intent.payment_failed"
)

// PaymentEvent is the part of a provider webhook the order flow cares about.
type PaymentEvent struct {
	Type     string
	IntentID string
	Amount   int64
}

// PaymentProvider creates card payment intents and verifies their webhooks.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, order *models.Order) (intentID, clientSecret string, err error)
	ParseWebhook(payload []byte, signature string) (PaymentEvent, error)
}

type StripeProvider struct {
	webhookSecret string
}

func NewStripeProvider(secretKey, webhookSecret string) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{webhookSecret: webhookSecret}
}

// toMinorUnits converts taka to poisha.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (p *StripeProvider) CreateIntent(ctx context.Context, order *models.Order) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(order.Total)),
		Currency: stripe.String(strings.ToLower(models.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		ReceiptEmail: stripe.String(order.CustomerEmail),
	}
	params.Context = ctx
	params.AddMetadata("order_id", order.ID.String())
	params.AddMetadata("order_number", order.OrderNumber)

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", "", fmt.Errorf("create payment intent: %w", err)
	}
	config.Log.Info("[stripe] payment intent created", "order_number", order.OrderNumber, "intent", pi.ID)
	return pi.ID, pi.ClientSecret, nil
}

func (p *StripeProvider) ParseWebhook(payload []byte, signature string) (PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return PaymentEvent{}, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	out := PaymentEvent{Type: string(event.Type)}
	switch out.Type {
	case PaymentEventSucceeded, PaymentEventFailed:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return PaymentEvent{}, fmt.Errorf("parse payment intent: %w", err)
		}
		out.IntentID = pi.ID
		out.Amount = pi.Amount
	}
	return out, nil
}

// HandlePaymentEvent applies a verified webhook event to its order. Unknown
// event types and unknown intents are ignored.
func HandlePaymentEvent(ctx context.Context, ev PaymentEvent) error {
	switch ev.Type {
	case PaymentEventSucceeded:
		order, err := MarkOrderPaid(ctx, ev.IntentID)
		if errors.Is(err, ErrNotFound) {
			config.Log.Warn("[stripe] payment for unknown intent", "intent", ev.IntentID)
			return nil
		}
		if err != nil {
			return err
		}
		if toMinorUnits(order.Total) != ev.Amount {
			config.Log.Warn("[stripe] paid amount differs from order total", "order_number", order.OrderNumber, "amount", ev.Amount)
		}
		config.Log.Info("[stripe] order paid", "order_number", order.OrderNumber)
	case PaymentEventFailed:
		if err := MarkOrderPaymentFailed(ctx, ev.IntentID); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		config.Log.Info("[stripe] payment failed", "intent", ev.IntentID)
	default:
		config.Log.Debug("[stripe] ignoring webhook event", "type", ev.Type)
	}
	return nil
}
