package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/realtime"
	"github.com/online-bazar/bazar-backend/testutil"
)

func TestRecordCartActivityLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	saree := testutil.SeedItem(t, env.db, "saree", 2500, 10)

	res, err := RecordCartActivity(ctx, CartActivityInput{
		SessionID: "sess-1",
		Items:     []models.CartLineInput{lineInput(saree, 2)},
		Customer:  &models.CartCustomerInput{Email: "  Rina@Example.com "},
		Zone:      models.ZoneInsideDhaka,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.Action != CartActionCreated {
		t.Fatalf("action: want=%s got=%s", CartActionCreated, res.Action)
	}
	if res.Cart.Subtotal != 5000 || res.Cart.ItemCount != 2 {
		t.Fatalf("totals: subtotal=%v count=%d", res.Cart.Subtotal, res.Cart.ItemCount)
	}
	if res.Cart.CustomerEmail != "rina@example.com" {
		t.Fatalf("email not normalized: %q", res.Cart.CustomerEmail)
	}

	res, err = RecordCartActivity(ctx, CartActivityInput{
		SessionID: "sess-1",
		Items:     []models.CartLineInput{lineInput(saree, 2)},
	})
	if err != nil {
		t.Fatalf("repeat: %v", err)
	}
	if res.Action != CartActionUnchanged {
		t.Fatalf("action: want=%s got=%s", CartActionUnchanged, res.Action)
	}

	res, err = RecordCartActivity(ctx, CartActivityInput{
		SessionID: "sess-1",
		Items:     []models.CartLineInput{lineInput(saree, 3)},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Action != CartActionUpdated || res.Cart.Subtotal != 7500 {
		t.Fatalf("update: action=%s subtotal=%v", res.Action, res.Cart.Subtotal)
	}
	if res.Cart.CustomerEmail != "rina@example.com" {
		t.Fatalf("email should survive snapshots without customer data, got %q", res.Cart.CustomerEmail)
	}

	res, err = RecordCartActivity(ctx, CartActivityInput{SessionID: "sess-1"})
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if res.Action != CartActionDeleted {
		t.Fatalf("action: want=%s got=%s", CartActionDeleted, res.Action)
	}

	var n int64
	env.db.Model(&models.AbandonedCart{}).Count(&n)
	if n != 0 {
		t.Fatalf("emptied cart should be removed, %d left", n)
	}

	got := env.drainEvents()
	want := []string{realtime.EventCartUpdated, realtime.EventCartUpdated, realtime.EventCartDeleted}
	if len(got) != len(want) {
		t.Fatalf("events: want=%v got=%v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events: want=%v got=%v", want, got)
		}
	}
}

func TestRecordCartActivityEmptyWithoutCartIsNoop(t *testing.T) {
	newTestEnv(t)
	res, err := RecordCartActivity(context.Background(), CartActivityInput{SessionID: "nobody"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Action != CartActionNoop || res.Cart != nil {
		t.Fatalf("want noop, got %+v", res)
	}
}

func TestRecordCartActivityRequiresSession(t *testing.T) {
	newTestEnv(t)
	_, err := RecordCartActivity(context.Background(), CartActivityInput{SessionID: "  "})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestRecordCartActivitySanitizesLines(t *testing.T) {
	env := newTestEnv(t)
	active := testutil.SeedItem(t, env.db, "panjabi", 1800, 3)
	draft := testutil.SeedItem(t, env.db, "draft", 100, 10, testutil.WithStatus(models.ItemStatusDraft))

	res, err := RecordCartActivity(context.Background(), CartActivityInput{
		SessionID: "sess-2",
		Items: []models.CartLineInput{
			lineInput(active, 2),
			lineInput(active, 4),
			lineInput(draft, 1),
			{ItemID: "not-a-uuid", Quantity: 1},
			{ItemID: uuid.NewString(), Quantity: 1},
			{ItemID: active.ID.String(), Quantity: 0},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	lines := res.Cart.Lines
	if len(lines) != 1 {
		t.Fatalf("want one merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("quantity should be clamped to stock, got %d", lines[0].Quantity)
	}
	if lines[0].UnitPrice != 1800 || lines[0].Name != "panjabi" {
		t.Fatalf("line should carry catalog data, got %+v", lines[0])
	}
}

func TestRecordCartActivityBoundsInput(t *testing.T) {
	env := newTestEnv(t)
	item := testutil.SeedItem(t, env.db, "gamcha", 150, 1000)

	inputs := make([]models.CartLineInput, 0, 1000)
	for i := 0; i < 999; i++ {
		inputs = append(inputs, models.CartLineInput{ItemID: uuid.NewString(), Quantity: 1})
	}
	// Only reachable if the raw list were read past its cap.
	inputs = append(inputs, lineInput(item, 1))

	res, err := RecordCartActivity(context.Background(), CartActivityInput{
		SessionID: "sess-big",
		Items:     inputs,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Action != CartActionNoop {
		t.Fatalf("lines past the cap should be ignored, action=%s", res.Action)
	}

	res, err = RecordCartActivity(context.Background(), CartActivityInput{
		SessionID: "sess-big",
		Items:     []models.CartLineInput{lineInput(item, 1)},
		Customer: &models.CartCustomerInput{
			Name:  strings.Repeat("ক", 300),
			Email: strings.Repeat("a", 250) + "@example.com",
			Phone: strings.Repeat("0", 60),
		},
	})
	if err != nil {
		t.Fatalf("oversized contact fields should not fail the snapshot: %v", err)
	}
	if n := utf8.RuneCountInString(res.Cart.CustomerName); n != 255 {
		t.Fatalf("name should be cut to 255 characters, got %d", n)
	}
	if res.Cart.CustomerEmail != "" || res.Cart.CustomerPhone != "" {
		t.Fatalf("oversized email/phone should be dropped, got %q %q", res.Cart.CustomerEmail, res.Cart.CustomerPhone)
	}
}

func TestRecordCartActivityAdoptsUserCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	item := testutil.SeedItem(t, env.db, "shawl", 900, 5)
	user := testutil.SeedUser(t, env.db, "karim@example.com", models.RoleCustomer)

	first, err := RecordCartActivity(ctx, CartActivityInput{SessionID: "laptop", UserID: &user.ID, Items: []models.CartLineInput{lineInput(item, 1)}})
	if err != nil {
		t.Fatal(err)
	}

	res, err := RecordCartActivity(ctx, CartActivityInput{SessionID: "phone", UserID: &user.ID, Items: []models.CartLineInput{lineInput(item, 1)}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Action != CartActionAdopted {
		t.Fatalf("action: want=%s got=%s", CartActionAdopted, res.Action)
	}
	if res.Cart.ID != first.Cart.ID || res.Cart.SessionID != "phone" {
		t.Fatalf("cart should move to the new session, got id=%s session=%s", res.Cart.ID, res.Cart.SessionID)
	}
}

func TestRecordCartActivityReactivatesRemindedCart(t *testing.T) {
	env := newTestEnv(t)
	item := testutil.SeedItem(t, env.db, "kurti", 1200, 5)
	cart := testutil.SeedCart(t, env.db, "sess-r", "a@example.com", 2*time.Hour)
	env.db.Model(cart).Updates(map[string]any{"status": models.CartStatusReminded, "reminders_sent": 1})

	res, err := RecordCartActivity(context.Background(), CartActivityInput{SessionID: "sess-r", Items: []models.CartLineInput{lineInput(item, 1)}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Cart.ID != cart.ID {
		t.Fatalf("should reuse the reminded cart")
	}
	if res.Cart.Status != models.CartStatusActive {
		t.Fatalf("status: want=%s got=%s", models.CartStatusActive, res.Cart.Status)
	}
	if res.Cart.RemindersSent != 1 {
		t.Fatalf("reminder count must not reset, got %d", res.Cart.RemindersSent)
	}
}

func TestRecordCartActivityConcurrentSnapshotsKeepOneCart(t *testing.T) {
	env := newTestEnv(t)
	item := testutil.SeedItem(t, env.db, "tote", 300, 50)

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(q int) {
			defer wg.Done()
			if _, err := RecordCartActivity(context.Background(), CartActivityInput{
				SessionID: "busy",
				Items:     []models.CartLineInput{lineInput(item, q)},
			}); err != nil {
				t.Errorf("snapshot %d: %v", q, err)
			}
		}(i)
	}
	wg.Wait()

	var n int64
	env.db.Model(&models.AbandonedCart{}).Where("session_id = ?", "busy").Count(&n)
	if n != 1 {
		t.Fatalf("want one open cart, got %d", n)
	}
	if cartLocks.size() != 0 {
		t.Fatalf("session locks should be released, %d held", cartLocks.size())
	}
}
