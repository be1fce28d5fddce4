package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/testutil"
)

func TestCalculateQuote(t *testing.T) {
	settings := models.ShippingSettings{InsideDhakaFee: 60, OutsideDhakaFee: 120, FreeShippingThreshold: 5000}
	lines := []QuoteLine{
		{ItemID: uuid.New(), UnitPrice: 1250.5, Quantity: 2},
		{ItemID: uuid.New(), UnitPrice: 99.99, Quantity: 1},
	}

	tests := []struct {
		name     string
		lines    []QuoteLine
		zone     string
		coupon   *models.Coupon
		taxRate  float64
		shipping float64
		discount float64
		tax      float64
		total    float64
	}{
		{name: "inside dhaka", lines: lines, zone: models.ZoneInsideDhaka, shipping: 60, total: 2660.99},
		{name: "outside dhaka", lines: lines, zone: models.ZoneOutsideDhaka, shipping: 120, total: 2720.99},
		{
			name:     "percent coupon with cap",
			lines:    lines,
			zone:     models.ZoneInsideDhaka,
			coupon:   &models.Coupon{Code: "EID", Type: models.CouponPercent, Value: 50, MaxDiscount: 300},
			shipping: 60,
			discount: 300,
			total:    2360.99,
		},
		{
			name:     "fixed coupon never exceeds subtotal",
			lines:    []QuoteLine{{ItemID: uuid.New(), UnitPrice: 100, Quantity: 1}},
			zone:     models.ZoneOutsideDhaka,
			coupon:   &models.Coupon{Code: "BIG", Type: models.CouponFixed, Value: 500},
			shipping: 120,
			discount: 100,
			total:    120,
		},
		{
			name:     "free shipping coupon",
			lines:    lines,
			zone:     models.ZoneOutsideDhaka,
			coupon:   &models.Coupon{Code: "SHIP", Type: models.CouponFreeShipping},
			shipping: 0,
			total:    2600.99,
		},
		{
			name:     "threshold waives shipping",
			lines:    []QuoteLine{{ItemID: uuid.New(), UnitPrice: 5000, Quantity: 1}},
			zone:     models.ZoneOutsideDhaka,
			shipping: 0,
			total:    5000,
		},
		{
			name:     "tax applies after discount",
			lines:    []QuoteLine{{ItemID: uuid.New(), UnitPrice: 1000, Quantity: 1}},
			zone:     models.ZoneInsideDhaka,
			coupon:   &models.Coupon{Code: "TEN", Type: models.CouponPercent, Value: 10},
			taxRate:  0.05,
			shipping: 60,
			discount: 100,
			tax:      45,
			total:    1005,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := CalculateQuote(tt.lines, tt.zone, tt.coupon, settings, tt.taxRate)
			if err != nil {
				t.Fatal(err)
			}
			if q.Shipping != tt.shipping {
				t.Errorf("shipping: want=%v got=%v", tt.shipping, q.Shipping)
			}
			if q.Discount != tt.discount {
				t.Errorf("discount: want=%v got=%v", tt.discount, q.Discount)
			}
			if q.Tax != tt.tax {
				t.Errorf("tax: want=%v got=%v", tt.tax, q.Tax)
			}
			if q.Total != tt.total {
				t.Errorf("total: want=%v got=%v", tt.total, q.Total)
			}
			if q.Currency != models.Currency {
				t.Errorf("currency: want=%s got=%s", models.Currency, q.Currency)
			}
		})
	}
}

func TestCalculateQuoteRejectsUnknownZone(t *testing.T) {
	_, err := CalculateQuote(nil, "mars", nil, models.DefaultShippingSettings(), 0)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestCheckCoupon(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name   string
		coupon models.Coupon
		total  float64
		want   error
	}{
		{name: "valid", coupon: models.Coupon{Active: true}, total: 100},
		{name: "inactive", coupon: models.Coupon{}, total: 100, want: ErrCouponInactive},
		{name: "not started", coupon: models.Coupon{Active: true, StartsAt: &future}, total: 100, want: ErrCouponNotStarted},
		{name: "expired", coupon: models.Coupon{Active: true, EndsAt: &past}, total: 100, want: ErrCouponExpired},
		{name: "ends exactly now", coupon: models.Coupon{Active: true, EndsAt: &now}, total: 100, want: ErrCouponExpired},
		{name: "exhausted", coupon: models.Coupon{Active: true, UsageLimit: 2, UsedCount: 2}, total: 100, want: ErrCouponExhausted},
		{name: "below minimum", coupon: models.Coupon{Active: true, MinOrderAmount: 500}, total: 499.99, want: ErrCouponMinimum},
		{name: "unlimited usage", coupon: models.Coupon{Active: true, UsedCount: 1000}, total: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCoupon(&tt.coupon, tt.total, now)
			if !errors.Is(err, tt.want) {
				t.Fatalf("want=%v got=%v", tt.want, err)
			}
			if tt.want != nil && !errors.Is(err, ErrCouponInvalid) {
				t.Fatalf("coupon errors should wrap ErrCouponInvalid")
			}
		})
	}
}

func TestFindValidCouponNormalizesCode(t *testing.T) {
	env := newTestEnv(t)
	testutil.SeedCoupon(t, env.db, "EID25", models.CouponPercent, 25, 0)

	c, err := FindValidCoupon(context.Background(), env.db, "  eid25 ", 100)
	if err != nil {
		t.Fatal(err)
	}
	if c.Code != "EID25" {
		t.Fatalf("code: got %s", c.Code)
	}
	if _, err := FindValidCoupon(context.Background(), env.db, "NOPE", 100); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("want ErrCouponNotFound, got %v", err)
	}
}

func TestConsumeCouponRespectsUsageLimit(t *testing.T) {
	env := newTestEnv(t)
	c := testutil.SeedCoupon(t, env.db, "ONCE", models.CouponFixed, 50, 1)

	if err := ConsumeCoupon(env.db, c.ID); err != nil {
		t.Fatalf("first use: %v", err)
	}
	if err := ConsumeCoupon(env.db, c.ID); !errors.Is(err, ErrCouponExhausted) {
		t.Fatalf("second use: want ErrCouponExhausted, got %v", err)
	}
	if err := ReleaseCoupon(env.db, c.ID); err != nil {
		t.Fatal(err)
	}
	if err := ConsumeCoupon(env.db, c.ID); err != nil {
		t.Fatalf("use after release: %v", err)
	}
}

func TestCreateCouponValidation(t *testing.T) {
	newTestEnv(t)
	ctx := context.Background()
	start := time.Now()
	end := start.Add(-time.Hour)

	if _, err := CreateCoupon(ctx, models.CouponRequest{Code: "BAD", Type: models.CouponPercent, Value: 150}); err == nil {
		t.Fatal("percent over 100 should fail")
	}
	if _, err := CreateCoupon(ctx, models.CouponRequest{Code: "WIN", Type: models.CouponFixed, Value: 10, StartsAt: &start, EndsAt: &end}); err == nil {
		t.Fatal("inverted window should fail")
	}
	c, err := CreateCoupon(ctx, models.CouponRequest{Code: " new10 ", Type: models.CouponFixed, Value: 10})
	if err != nil {
		t.Fatal(err)
	}
	if c.Code != "NEW10" || !c.Active {
		t.Fatalf("got code=%s active=%v", c.Code, c.Active)
	}
	if _, err := CreateCoupon(ctx, models.CouponRequest{Code: "NEW10", Type: models.CouponFixed, Value: 10}); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate code: want ErrConflict, got %v", err)
	}
}
