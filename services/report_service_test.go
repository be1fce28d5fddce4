package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/testutil"
	"gorm.io/datatypes"
)

func TestParseReportRange(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC)
	day := func(s string) time.Time {
		d, _ := time.Parse(reportDateLayout, s)
		return d
	}

	tests := []struct {
		name     string
		from, to string
		wantFrom time.Time
		wantTo   time.Time
		wantErr  bool
	}{
		{name: "defaults to last 30 days", wantFrom: day("2026-02-14"), wantTo: day("2026-03-16")},
		{name: "explicit bounds", from: "2026-01-01", to: "2026-01-31", wantFrom: day("2026-01-01"), wantTo: day("2026-02-01")},
		{name: "single day", from: "2026-03-01", to: "2026-03-01", wantFrom: day("2026-03-01"), wantTo: day("2026-03-02")},
		{name: "from after to", from: "2026-03-10", to: "2026-03-01", wantErr: true},
		{name: "bad date", from: "01/03/2026", wantErr: true},
		{name: "too long", from: "2025-01-01", to: "2026-01-02", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseReportRange(tt.from, tt.to, now)
			if tt.wantErr {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("want ValidationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !r.From.Equal(tt.wantFrom) || !r.To.Equal(tt.wantTo) {
				t.Fatalf("range: got %s..%s want %s..%s", r.From, r.To, tt.wantFrom, tt.wantTo)
			}
		})
	}
}

type reportOrder struct {
	zone   string
	status string
	at     time.Time
	itemID uuid.UUID
	name   string
	qty    int
	price  float64
	ship   float64
}

func seedReportOrders(t *testing.T, env *testEnv, orders ...reportOrder) {
	t.Helper()
	for _, ro := range orders {
		line := ro.price * float64(ro.qty)
		o := &models.Order{
			OrderNumber:     "BZ-" + uuid.NewString()[:12],
			CustomerName:    "Report Customer",
			CustomerEmail:   "report@example.com",
			CustomerPhone:   "01700000000",
			ShippingAddress: datatypes.NewJSONType(models.ShippingAddress{Line1: "Road 1", City: "Dhaka"}),
			Zone:            ro.zone,
			Status:          ro.status,
			PaymentMethod:   models.PaymentMethodCOD,
			PaymentStatus:   models.PaymentStatusUnpaid,
			Subtotal:        line,
			ShippingFee:     ro.ship,
			Total:           line + ro.ship,
			CreatedAt:       ro.at,
			Items: []models.OrderItem{{
				ItemID:    ro.itemID,
				Name:      ro.name,
				UnitPrice: ro.price,
				Quantity:  ro.qty,
				LineTotal: line,
			}},
		}
		if err := env.db.Create(o).Error; err != nil {
			t.Fatalf("seed order: %v", err)
		}
	}
}

func TestSalesReports(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	shawl, lamp := uuid.New(), uuid.New()
	d1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	d3 := time.Date(2026, 3, 3, 15, 0, 0, 0, time.UTC)

	seedReportOrders(t, env,
		reportOrder{zone: models.ZoneInsideDhaka, status: models.OrderStatusDelivered, at: d1, itemID: shawl, name: "Shawl", qty: 2, price: 1000, ship: 60},
		reportOrder{zone: models.ZoneOutsideDhaka, status: models.OrderStatusPending, at: d1.Add(time.Hour), itemID: lamp, name: "Lamp", qty: 1, price: 500, ship: 120},
		reportOrder{zone: models.ZoneInsideDhaka, status: models.OrderStatusConfirmed, at: d3, itemID: shawl, name: "Shawl", qty: 1, price: 1000, ship: 60},
		reportOrder{zone: models.ZoneInsideDhaka, status: models.OrderStatusCancelled, at: d3, itemID: lamp, name: "Lamp", qty: 9, price: 500, ship: 60},
		// Outside the range.
		reportOrder{zone: models.ZoneInsideDhaka, status: models.OrderStatusDelivered, at: d1.AddDate(0, 0, -5), itemID: lamp, name: "Lamp", qty: 1, price: 500, ship: 60},
	)

	r, err := ParseReportRange("2026-03-01", "2026-03-03", d3)
	if err != nil {
		t.Fatal(err)
	}

	overview, err := OverviewReport(ctx, r)
	if err != nil {
		t.Fatal(err)
	}
	// 2060 + 620 + 1060
	if overview.Revenue != 3740 || overview.Orders != 3 {
		t.Fatalf("overview: revenue=%v orders=%d", overview.Revenue, overview.Orders)
	}
	if overview.AverageOrderValue != 1246.67 || overview.CancelledOrders != 1 || overview.PendingOrders != 1 {
		t.Fatalf("overview: %+v", overview)
	}
	if overview.Currency != "BDT" {
		t.Fatalf("currency: %s", overview.Currency)
	}

	days, err := SalesByDay(ctx, r)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 3 {
		t.Fatalf("days: want 3 got %d", len(days))
	}
	want := []models.DailySales{
		{Day: "2026-03-01", Revenue: 2680, Orders: 2},
		{Day: "2026-03-02"},
		{Day: "2026-03-03", Revenue: 1060, Orders: 1},
	}
	for i := range want {
		if days[i] != want[i] {
			t.Fatalf("day %d: got %+v want %+v", i, days[i], want[i])
		}
	}

	top, err := TopItems(ctx, r, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 || top[0].ItemID != shawl.String() || top[0].Quantity != 3 || top[0].Revenue != 3000 {
		t.Fatalf("top items: %+v", top)
	}

	zones, err := SalesByZone(ctx, r)
	if err != nil {
		t.Fatal(err)
	}
	if len(zones) != 2 || zones[0].Zone != models.ZoneInsideDhaka || zones[0].Orders != 2 || zones[0].Shipping != 120 {
		t.Fatalf("zones: %+v", zones)
	}

	statuses, err := OrdersByStatus(ctx, r)
	if err != nil {
		t.Fatal(err)
	}
	if len(statuses) != 4 {
		t.Fatalf("statuses: %+v", statuses)
	}
}

func TestGenerateInvoicePDF(t *testing.T) {
	env := newTestEnv(t)
	item := testutil.SeedItem(t, env.db, "Nakshi Kantha", 2500, 5)
	res, err := PlaceOrder(context.Background(), PlaceOrderInput{Request: orderRequest(lineInput(item, 2))})
	if err != nil {
		t.Fatal(err)
	}
	order, err := GetOrder(context.Background(), res.Order.ID)
	if err != nil {
		t.Fatal(err)
	}

	out, err := GenerateInvoicePDF(order)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) < 1000 || !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("invoice is not a PDF (%d bytes)", len(out))
	}
	if got := pdfMoney(1234.5); got != "BDT 1234.50" {
		t.Fatalf("pdfMoney: %s", got)
	}
}
