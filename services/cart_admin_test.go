package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/realtime"
	"github.com/online-bazar/bazar-backend/testutil"
)

func TestListAbandonedCarts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	withEmail := testutil.SeedCart(t, env.db, "s-email", "a@example.com", 2*time.Hour)
	testutil.SeedCart(t, env.db, "s-guest", "", time.Hour)
	expired := testutil.SeedCart(t, env.db, "s-old", "old@example.com", 72*time.Hour)
	if err := env.db.Model(expired).Update("status", models.CartStatusExpired).Error; err != nil {
		t.Fatal(err)
	}

	yes, no := true, false
	tests := []struct {
		name   string
		filter models.AbandonedCartFilter
		want   int64
	}{
		{name: "all", want: 3},
		{name: "open", filter: models.AbandonedCartFilter{Status: "open"}, want: 2},
		{name: "expired", filter: models.AbandonedCartFilter{Status: models.CartStatusExpired}, want: 1},
		{name: "reachable", filter: models.AbandonedCartFilter{Status: "open", HasEmail: &yes}, want: 1},
		{name: "anonymous", filter: models.AbandonedCartFilter{HasEmail: &no}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, total, _, _, err := ListAbandonedCarts(ctx, tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			if total != tt.want {
				t.Fatalf("total: want=%d got=%d", tt.want, total)
			}
		})
	}

	carts, _, _, _, err := ListAbandonedCarts(ctx, models.AbandonedCartFilter{Status: "open"})
	if err != nil {
		t.Fatal(err)
	}
	if carts[0].SessionID != "s-guest" {
		t.Fatalf("most recent activity first, got %s", carts[0].SessionID)
	}

	if _, _, _, _, err := ListAbandonedCarts(ctx, models.AbandonedCartFilter{From: "yesterday"}); err == nil {
		t.Fatal("bad date should fail")
	}

	if _, err := DeleteAbandonedCart(ctx, withEmail.ID); err != nil {
		t.Fatal(err)
	}
	if got := env.drainEvents(); len(got) != 1 || got[0] != realtime.EventCartDeleted {
		t.Fatalf("events: %v", got)
	}
	if _, err := GetAbandonedCart(ctx, withEmail.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted cart: want ErrNotFound, got %v", err)
	}
}
