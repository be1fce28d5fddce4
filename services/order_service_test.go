package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/testutil"
)

func orderRequest(items ...models.CartLineInput) models.CreateOrderRequest {
	return models.CreateOrderRequest{
		CustomerName:    "Nusrat Jahan",
		CustomerEmail:   "Nusrat@Example.com",
		CustomerPhone:   "01711000000",
		ShippingAddress: models.ShippingAddress{Line1: "House 12, Road 4", City: "Dhaka", Area: "Dhanmondi"},
		Zone:            models.ZoneInsideDhaka,
		PaymentMethod:   models.PaymentMethodCOD,
		Items:           items,
	}
}

func reloadItem(t *testing.T, env *testEnv, item *models.Item) models.Item {
	t.Helper()
	var got models.Item
	if err := env.db.First(&got, "id = ?", item.ID).Error; err != nil {
		t.Fatal(err)
	}
	return got
}

func reloadCoupon(t *testing.T, env *testEnv, coupon *models.Coupon) models.Coupon {
	t.Helper()
	var got models.Coupon
	if err := env.db.First(&got, "id = ?", coupon.ID).Error; err != nil {
		t.Fatal(err)
	}
	return got
}

func TestNewOrderNumberFormat(t *testing.T) {
	re := regexp.MustCompile(`^OB-260418-[A-HJ-NP-Z2-9]{6}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		n, err := NewOrderNumber(time.Date(2026, 4, 18, 23, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatal(err)
		}
		if !re.MatchString(n) {
			t.Fatalf("unexpected order number %q", n)
		}
		seen[n] = true
	}
	if len(seen) < 45 {
		t.Fatalf("order numbers look predictable: %d unique of 50", len(seen))
	}
}

func TestPlaceOrderReservesStockAndRecoversCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	saree := testutil.SeedItem(t, env.db, "saree", 2500, 5)
	scarf := testutil.SeedItem(t, env.db, "scarf", 450, 10)
	coupon := testutil.SeedCoupon(t, env.db, "EID10", models.CouponPercent, 10, 5)
	testutil.SeedCart(t, env.db, "sess-order", "nusrat@example.com", time.Hour)

	req := orderRequest(lineInput(saree, 2), lineInput(scarf, 1))
	req.CouponCode = "eid10"
	res, err := PlaceOrder(ctx, PlaceOrderInput{Request: req, SessionID: "sess-order"})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	o := res.Order
	if !strings.HasPrefix(o.OrderNumber, "OB-") {
		t.Fatalf("order number: %s", o.OrderNumber)
	}
	if o.Subtotal != 5450 || o.Discount != 545 || o.ShippingFee != 60 || o.Total != 4965 {
		t.Fatalf("totals: subtotal=%v discount=%v shipping=%v total=%v", o.Subtotal, o.Discount, o.ShippingFee, o.Total)
	}
	if o.CustomerEmail != "nusrat@example.com" || o.Status != models.OrderStatusPending || o.PaymentStatus != models.PaymentStatusUnpaid {
		t.Fatalf("order fields: %+v", o)
	}
	if len(o.Items) != 2 {
		t.Fatalf("items: want 2 got %d", len(o.Items))
	}

	if got := reloadItem(t, env, saree).Stock; got != 3 {
		t.Fatalf("saree stock: want=3 got=%d", got)
	}
	if got := reloadItem(t, env, scarf).Stock; got != 9 {
		t.Fatalf("scarf stock: want=9 got=%d", got)
	}

	c := reloadCoupon(t, env, coupon)
	if c.UsedCount != 1 {
		t.Fatalf("coupon used_count: want=1 got=%d", c.UsedCount)
	}

	var cart models.AbandonedCart
	if err := env.db.First(&cart, "session_id = ?", "sess-order").Error; err != nil {
		t.Fatal(err)
	}
	if cart.Status != models.CartStatusRecovered || cart.RecoveredOrderID == nil || *cart.RecoveredOrderID != o.ID {
		t.Fatalf("cart should be recovered by the order, got status=%s", cart.Status)
	}

	sent := env.mail.Sent()
	if len(sent) != 1 || sent[0].To != "nusrat@example.com" || !strings.Contains(sent[0].Subject, o.OrderNumber) {
		t.Fatalf("confirmation email: %+v", sent)
	}
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	env := newTestEnv(t)
	plenty := testutil.SeedItem(t, env.db, "plenty", 100, 50)
	scarce := testutil.SeedItem(t, env.db, "scarce", 100, 1)
	coupon := testutil.SeedCoupon(t, env.db, "FLAT", models.CouponFixed, 20, 0)

	req := orderRequest(lineInput(plenty, 3), lineInput(scarce, 2))
	req.CouponCode = "FLAT"
	_, err := PlaceOrder(context.Background(), PlaceOrderInput{Request: req})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock, got %v", err)
	}
	var ie *ItemError
	if !errors.As(err, &ie) || ie.ItemID != scarce.ID.String() {
		t.Fatalf("error should name the scarce item, got %v", err)
	}

	if got := reloadItem(t, env, plenty).Stock; got != 50 {
		t.Fatalf("stock must be untouched after rollback, got %d", got)
	}
	c := reloadCoupon(t, env, coupon)
	if c.UsedCount != 0 {
		t.Fatalf("coupon must not be consumed, got %d", c.UsedCount)
	}
	var n int64
	env.db.Model(&models.Order{}).Count(&n)
	if n != 0 {
		t.Fatalf("no order should be stored, got %d", n)
	}
}

func TestPlaceOrderRejects(t *testing.T) {
	env := newTestEnv(t)
	item := testutil.SeedItem(t, env.db, "item", 100, 5)
	draft := testutil.SeedItem(t, env.db, "draft", 100, 5, testutil.WithStatus(models.ItemStatusDraft))
	ctx := context.Background()

	if _, err := PlaceOrder(ctx, PlaceOrderInput{Request: orderRequest()}); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("empty: want ErrEmptyCart, got %v", err)
	}
	if _, err := PlaceOrder(ctx, PlaceOrderInput{Request: orderRequest(lineInput(draft, 1))}); !errors.Is(err, ErrItemUnavailable) {
		t.Fatalf("draft: want ErrItemUnavailable, got %v", err)
	}

	req := orderRequest(lineInput(item, 1))
	req.PaymentMethod = models.PaymentMethodCard
	var ve *ValidationError
	if _, err := PlaceOrder(ctx, PlaceOrderInput{Request: req}); !errors.As(err, &ve) {
		t.Fatalf("card without provider: want ValidationError, got %v", err)
	}

	req = orderRequest(lineInput(item, 1))
	req.CouponCode = "MISSING"
	if _, err := PlaceOrder(ctx, PlaceOrderInput{Request: req}); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("bad coupon: want ErrCouponNotFound, got %v", err)
	}
}

func TestPlaceOrderRejectsMergedQuantityOverLimit(t *testing.T) {
	env := newTestEnv(t)
	item := testutil.SeedItem(t, env.db, "lungi", 450, 500)
	ctx := context.Background()

	req := orderRequest(lineInput(item, 60), lineInput(item, 60))
	var ve *ValidationError
	if _, err := PlaceOrder(ctx, PlaceOrderInput{Request: req}); !errors.As(err, &ve) {
		t.Fatalf("want ValidationError for 120 units on one line, got %v", err)
	}
	if got := reloadItem(t, env, item); got.Stock != 500 {
		t.Fatalf("stock should be untouched, got %d", got.Stock)
	}

	if _, err := QuoteCart(ctx, models.QuoteRequest{
		Items: []models.CartLineInput{lineInput(item, 50), lineInput(item, 50)},
		Zone:  models.ZoneInsideDhaka,
	}); !errors.As(err, &ve) {
		t.Fatalf("quote: want ValidationError for 100 units, got %v", err)
	}

	if _, err := PlaceOrder(ctx, PlaceOrderInput{Request: orderRequest(lineInput(item, 49), lineInput(item, 50))}); err != nil {
		t.Fatalf("99 units should be accepted: %v", err)
	}
}

func TestPlaceOrderConcurrentCheckoutsNeverOversell(t *testing.T) {
	env := newTestEnv(t)
	item := testutil.SeedItem(t, env.db, "limited", 999, 3)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		placed  int
		soldOut int
	)
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := PlaceOrder(context.Background(), PlaceOrderInput{Request: orderRequest(lineInput(item, 1))})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				placed++
			case errors.Is(err, ErrInsufficientStock):
				soldOut++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if placed != 3 || soldOut != 3 {
		t.Fatalf("want 3 placed and 3 sold out, got %d and %d", placed, soldOut)
	}
	if got := reloadItem(t, env, item).Stock; got != 0 {
		t.Fatalf("stock: want=0 got=%d", got)
	}
}

func TestPlaceOrderCardCreatesIntent(t *testing.T) {
	env := newTestEnv(t)
	pay := &fakePayments{}
	InitPayments(pay)
	item := testutil.SeedItem(t, env.db, "card", 1000, 5)

	req := orderRequest(lineInput(item, 1))
	req.PaymentMethod = models.PaymentMethodCard
	res, err := PlaceOrder(context.Background(), PlaceOrderInput{Request: req})
	if err != nil {
		t.Fatal(err)
	}
	if res.ClientSecret != "secret_"+res.Order.OrderNumber {
		t.Fatalf("client secret: %q", res.ClientSecret)
	}

	paid, err := MarkOrderPaid(context.Background(), "pi_"+res.Order.OrderNumber)
	if err != nil {
		t.Fatal(err)
	}
	if paid.PaymentStatus != models.PaymentStatusPaid || paid.Status != models.OrderStatusConfirmed {
		t.Fatalf("after payment: status=%s payment=%s", paid.Status, paid.PaymentStatus)
	}

	again, err := MarkOrderPaid(context.Background(), "pi_"+res.Order.OrderNumber)
	if err != nil {
		t.Fatalf("second notification should be a no-op: %v", err)
	}
	if again.Status != models.OrderStatusConfirmed {
		t.Fatalf("status changed on replay: %s", again.Status)
	}
}

func TestTransitionOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	item := testutil.SeedItem(t, env.db, "lamp", 700, 4)
	res, err := PlaceOrder(ctx, PlaceOrderInput{Request: orderRequest(lineInput(item, 2))})
	if err != nil {
		t.Fatal(err)
	}
	id := res.Order.ID

	if _, err := TransitionOrder(ctx, id, models.OrderStatusShipped, ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("pending→shipped: want ErrInvalidTransition, got %v", err)
	}

	for _, s := range []string{models.OrderStatusConfirmed, models.OrderStatusProcessing, models.OrderStatusShipped, models.OrderStatusDelivered} {
		o, err := TransitionOrder(ctx, id, s, "")
		if err != nil {
			t.Fatalf("→%s: %v", s, err)
		}
		if o.Status != s {
			t.Fatalf("status: want=%s got=%s", s, o.Status)
		}
	}

	o, err := GetOrder(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if o.ConfirmedAt == nil || o.ShippedAt == nil || o.DeliveredAt == nil {
		t.Fatalf("timestamps should be recorded: %+v", o)
	}
	if o.PaymentStatus != models.PaymentStatusPaid {
		t.Fatalf("delivered COD order should be paid, got %s", o.PaymentStatus)
	}
	if _, err := TransitionOrder(ctx, id, models.OrderStatusCancelled, "too late"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("delivered→cancelled: want ErrInvalidTransition, got %v", err)
	}
}

func TestCancelRestoresStockAndCoupon(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	item := testutil.SeedItem(t, env.db, "mug", 300, 5)
	coupon := testutil.SeedCoupon(t, env.db, "MUG", models.CouponFixed, 50, 1)
	user := testutil.SeedUser(t, env.db, "buyer@example.com", models.RoleCustomer)

	req := orderRequest(lineInput(item, 3))
	req.CouponCode = "MUG"
	res, err := PlaceOrder(ctx, PlaceOrderInput{Request: req, UserID: &user.ID})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := TransitionOrder(ctx, res.Order.ID, models.OrderStatusCancelled, " "); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("want ErrReasonRequired, got %v", err)
	}

	other := testutil.SeedUser(t, env.db, "other@example.com", models.RoleCustomer)
	if _, err := CancelOwnOrder(ctx, other.ID, res.Order.ID, "not mine"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign order: want ErrNotFound, got %v", err)
	}

	o, err := CancelOwnOrder(ctx, user.ID, res.Order.ID, "changed my mind")
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != models.OrderStatusCancelled || o.CancelReason != "changed my mind" {
		t.Fatalf("cancelled order: status=%s reason=%q", o.Status, o.CancelReason)
	}
	if got := reloadItem(t, env, item).Stock; got != 5 {
		t.Fatalf("stock should be restored, got %d", got)
	}
	c := reloadCoupon(t, env, coupon)
	if c.UsedCount != 0 {
		t.Fatalf("coupon use should be released, got %d", c.UsedCount)
	}

	if _, err := CancelOwnOrder(ctx, user.ID, res.Order.ID, "again"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("double cancel: want ErrInvalidTransition, got %v", err)
	}
}

func TestTrackOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	item := testutil.SeedItem(t, env.db, "pen", 20, 5)
	res, err := PlaceOrder(ctx, PlaceOrderInput{Request: orderRequest(lineInput(item, 1))})
	if err != nil {
		t.Fatal(err)
	}

	o, err := TrackOrder(ctx, strings.ToLower(res.Order.OrderNumber), " NUSRAT@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if o.ID != res.Order.ID || len(o.Items) != 1 {
		t.Fatalf("tracked wrong order: %+v", o)
	}
	if _, err := TrackOrder(ctx, res.Order.OrderNumber, "someone@else.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("wrong email: want ErrNotFound, got %v", err)
	}
}

func TestPlaceOrderAppliesTaxRate(t *testing.T) {
	env := newTestEnv(t)
	config.App.TaxRate = 0.1
	item := testutil.SeedItem(t, env.db, "taxed", 1000, 5)

	res, err := PlaceOrder(context.Background(), PlaceOrderInput{Request: orderRequest(lineInput(item, 1))})
	if err != nil {
		t.Fatal(err)
	}
	if res.Order.Tax != 100 || res.Order.Total != 1160 {
		t.Fatalf("tax=%v total=%v", res.Order.Tax, res.Order.Total)
	}
}
