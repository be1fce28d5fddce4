package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/realtime"
	"github.com/online-bazar/bazar-backend/testutil"
)

func testPolicy() ReminderPolicy {
	return ReminderPolicy{
		Waves:       []time.Duration{time.Hour, 24 * time.Hour},
		MaxAttempts: 3,
		BaseBackoff: time.Minute,
		MaxBackoff:  10 * time.Minute,
	}
}

func TestReminderBackoff(t *testing.T) {
	p := testPolicy()
	tests := []struct {
		attempts int
		want     time.Duration
	}{
		{0, time.Minute},
		{1, 2 * time.Minute},
		{3, 8 * time.Minute},
		{4, 10 * time.Minute},
		{20, 10 * time.Minute},
	}
	for _, tt := range tests {
		if got := p.Backoff(tt.attempts); got != tt.want {
			t.Errorf("Backoff(%d): want=%s got=%s", tt.attempts, tt.want, got)
		}
	}
}

func TestReminderDueAt(t *testing.T) {
	p := testPolicy()
	last := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	cart := &models.AbandonedCart{LastActivityAt: last}

	due, ok := p.DueAt(cart)
	if !ok || !due.Equal(last.Add(time.Hour)) {
		t.Fatalf("first wave: due=%s ok=%v", due, ok)
	}

	retry := last.Add(3 * time.Hour)
	cart.NextAttemptAt = &retry
	if due, _ := p.DueAt(cart); !due.Equal(retry) {
		t.Fatalf("retry should push the due time, got %s", due)
	}

	cart.RemindersSent = 2
	if _, ok := p.DueAt(cart); ok {
		t.Fatal("no wave should be due after the last one")
	}
}

func TestRecoveryTokenHashing(t *testing.T) {
	token, hash, err := NewRecoveryToken()
	if err != nil {
		t.Fatal(err)
	}
	if len(token) < 40 || strings.ContainsAny(token, "+/=") {
		t.Fatalf("token should be long and URL safe: %q", token)
	}
	if hash != HashRecoveryToken(token) || len(hash) != 64 {
		t.Fatalf("hash mismatch: %s", hash)
	}
	if !strings.HasSuffix(RecoveryURL(token), "/cart/recover/"+token) {
		t.Fatalf("recovery url: %s", RecoveryURL(token))
	}
}

func TestDeliverCartReminderAndRecover(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cart := testutil.SeedCart(t, env.db, "sess-remind", "mina@example.com", 2*time.Hour)
	now := time.Now().UTC()

	if err := DeliverCartReminder(ctx, cart, testPolicy(), now); err != nil {
		t.Fatal(err)
	}
	if cart.Status != models.CartStatusReminded || cart.RemindersSent != 1 || cart.RecoveryTokenHash == "" {
		t.Fatalf("cart after send: %+v", cart)
	}

	sent := env.mail.Sent()
	if len(sent) != 1 || sent[0].To != "mina@example.com" {
		t.Fatalf("sent: %+v", sent)
	}
	idx := strings.Index(sent[0].Text, "/cart/recover/")
	if idx < 0 {
		t.Fatalf("reminder should carry a recovery link: %s", sent[0].Text)
	}
	token := sent[0].Text[idx+len("/cart/recover/"):]

	got, err := RecoverCart(ctx, token)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != cart.ID || got.RecoveredClickAt == nil {
		t.Fatalf("recovered cart: %+v", got)
	}
	if _, err := RecoverCart(ctx, "bogus"); !errors.Is(err, ErrRecoveryTokenInvalid) {
		t.Fatalf("bogus token: want ErrRecoveryTokenInvalid, got %v", err)
	}

	events := env.drainEvents()
	if len(events) != 1 || events[0] != realtime.EventCartReminded {
		t.Fatalf("events: %v", events)
	}
}

func TestDeliverCartReminderFailureBacksOff(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mail.SetFailure(errors.New("smtp down"))
	cart := testutil.SeedCart(t, env.db, "sess-fail", "fail@example.com", 2*time.Hour)
	p := testPolicy()
	now := time.Now().UTC()

	if err := DeliverCartReminder(ctx, cart, p, now); err == nil {
		t.Fatal("want delivery error")
	}
	if cart.Attempts != 1 || cart.NextAttemptAt == nil || !cart.NextAttemptAt.Equal(now.Add(2*time.Minute)) {
		t.Fatalf("first failure: attempts=%d next=%v", cart.Attempts, cart.NextAttemptAt)
	}
	if cart.LastError != "smtp down" {
		t.Fatalf("last error: %q", cart.LastError)
	}

	for i := 0; i < 2; i++ {
		_ = DeliverCartReminder(ctx, cart, p, now)
	}
	var stored models.AbandonedCart
	env.db.First(&stored, "id = ?", cart.ID)
	if stored.Status != models.CartStatusUndeliverable || stored.NextAttemptAt != nil {
		t.Fatalf("cart should be undeliverable after max attempts, got status=%s", stored.Status)
	}
	if stored.RemindersSent != 0 {
		t.Fatalf("failed sends must not count as reminders, got %d", stored.RemindersSent)
	}
}

func TestDeliverCartReminderNeedsEmail(t *testing.T) {
	env := newTestEnv(t)
	cart := testutil.SeedCart(t, env.db, "anon", "", 2*time.Hour)
	var ve *ValidationError
	if err := DeliverCartReminder(context.Background(), cart, testPolicy(), time.Now()); !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestExpireStaleCartsAndStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	testutil.SeedCart(t, env.db, "fresh", "a@example.com", time.Hour)
	testutil.SeedCart(t, env.db, "stale", "b@example.com", 40*24*time.Hour)
	done := testutil.SeedCart(t, env.db, "done", "c@example.com", 50*24*time.Hour)
	env.db.Model(done).Update("status", models.CartStatusRecovered)

	n, err := ExpireStaleCarts(ctx, time.Now().UTC().Add(-30*24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expired: want=1 got=%d", n)
	}

	stats, err := AbandonedCartStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Open != 1 || stats.Expired != 1 || stats.Recovered != 1 {
		t.Fatalf("stats: %+v", stats)
	}
	if stats.ValueAtRisk != 900 {
		t.Fatalf("value at risk: want=900 got=%v", stats.ValueAtRisk)
	}
	if stats.RecoveryRate != 33.33 {
		t.Fatalf("recovery rate: want=33.33 got=%v", stats.RecoveryRate)
	}
}

func TestRemindCartNowRejectsClosedCart(t *testing.T) {
	env := newTestEnv(t)
	cart := testutil.SeedCart(t, env.db, "closed", "x@example.com", time.Hour)
	env.db.Model(cart).Update("status", models.CartStatusExpired)

	var ve *ValidationError
	if _, err := RemindCartNow(context.Background(), cart.ID); !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}
