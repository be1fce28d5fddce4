package services

import (
	"context"
	"testing"

	category_cache "github.com/online-bazar/bazar-backend/cache"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/realtime"
	"github.com/online-bazar/bazar-backend/testutil"
	"gorm.io/gorm"
)

type testEnv struct {
	db     *gorm.DB
	mail   *LogMailer
	hub    *realtime.Hub
	events *realtime.Client
}

// newTestEnv wires a fresh database, a recording mailer and a local hub whose
// admin cart channel is observed by events.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	category_cache.Invalidate()

	prevApp := config.App
	prevMailer, prevPayments, prevForwarder := mailer, payments, forwarder
	realtimeMu.Lock()
	prevHub, prevBroadcaster := hub, broadcaster
	realtimeMu.Unlock()

	mail := NewLogMailer()
	InitMailer(mail)
	InitPayments(nil)
	InitForwarder(nil)

	h := realtime.NewHub(config.Log)
	InitRealtime(h, realtime.NewBroadcaster(realtime.NewLocalBus(h), config.Log))
	client := h.NewClient()
	h.Subscribe(client, realtime.ChannelAdminCarts)

	t.Cleanup(func() {
		config.App = prevApp
		mailer, payments, forwarder = prevMailer, prevPayments, prevForwarder
		InitRealtime(prevHub, prevBroadcaster)
	})
	return &testEnv{db: db, mail: mail, hub: h, events: client}
}

// drainEvents returns the event names queued for the admin cart channel.
func (e *testEnv) drainEvents() []string {
	var out []string
	for {
		select {
		case msg := <-e.events.Outbound:
			out = append(out, msg.Event)
		default:
			return out
		}
	}
}

type fakePayments struct {
	intents int
	err     error
}

func (f *fakePayments) CreateIntent(_ context.Context, order *models.Order) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	f.intents++
	return "pi_" + order.OrderNumber, "secret_" + order.OrderNumber, nil
}

func (f *fakePayments) ParseWebhook(payload []byte, _ string) (PaymentEvent, error) {
	return PaymentEvent{Type: PaymentEventSucceeded, IntentID: string(payload)}, nil
}

func lineInput(item *models.Item, qty int) models.CartLineInput {
	return models.CartLineInput{ItemID: item.ID.String(), Quantity: qty}
}
