package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
	"github.com/online-bazar/bazar-backend/testutil"
)

func testJob(now time.Time) *CartReminderJob {
	j := NewCartReminderJob(CartReminderOptions{
		Interval:  time.Minute,
		BatchSize: 10,
		Lease:     5 * time.Minute,
		Expiry:    30 * 24 * time.Hour,
		Policy: services.ReminderPolicy{
			Waves:       []time.Duration{time.Hour, 24 * time.Hour},
			MaxAttempts: 3,
			BaseBackoff: time.Minute,
			MaxBackoff:  time.Hour,
		},
	})
	j.now = func() time.Time { return now }
	return j
}

func TestRunOnceSendsDueWavesOnly(t *testing.T) {
	db := testutil.DB(t)
	mail := services.NewLogMailer()
	services.InitMailer(mail)
	t.Cleanup(func() { services.InitMailer(nil) })

	due := testutil.SeedCart(t, db, "due", "due@example.com", 2*time.Hour)
	testutil.SeedCart(t, db, "recent", "recent@example.com", 10*time.Minute)
	testutil.SeedCart(t, db, "anonymous", "", 5*time.Hour)
	stale := testutil.SeedCart(t, db, "stale", "stale@example.com", 45*24*time.Hour)

	job := testJob(time.Now().UTC())
	stats, err := job.RunOnce(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Claimed != 1 || stats.Sent != 1 || stats.Expired != 1 {
		t.Fatalf("stats: %+v", stats)
	}

	var got models.AbandonedCart
	db.First(&got, "id = ?", due.ID)
	if got.RemindersSent != 1 || got.Status != models.CartStatusReminded {
		t.Fatalf("due cart: sent=%d status=%s", got.RemindersSent, got.Status)
	}
	var expired models.AbandonedCart
	if err := db.First(&expired, "id = ?", stale.ID).Error; err != nil {
		t.Fatal(err)
	}
	if expired.Status != models.CartStatusExpired {
		t.Fatalf("stale cart: status=%s", expired.Status)
	}

	// The second wave is not due yet, so a rerun sends nothing.
	stats, err = job.RunOnce(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Claimed != 0 {
		t.Fatalf("rerun claimed %d", stats.Claimed)
	}
	if n := len(mail.Sent()); n != 1 {
		t.Fatalf("emails: want=1 got=%d", n)
	}
}

func TestRunOnceSecondWave(t *testing.T) {
	db := testutil.DB(t)
	services.InitMailer(services.NewLogMailer())
	t.Cleanup(func() { services.InitMailer(nil) })

	cart := testutil.SeedCart(t, db, "wave2", "w@example.com", 30*time.Hour)
	db.Model(cart).Updates(map[string]any{"reminders_sent": 1, "status": models.CartStatusReminded})

	stats, err := testJob(time.Now().UTC()).RunOnce(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Sent != 1 {
		t.Fatalf("stats: %+v", stats)
	}
	var got models.AbandonedCart
	db.First(&got, "id = ?", cart.ID)
	if got.RemindersSent != 2 {
		t.Fatalf("reminders_sent: want=2 got=%d", got.RemindersSent)
	}
}

func TestRunOnceFailureSchedulesRetry(t *testing.T) {
	db := testutil.DB(t)
	mail := services.NewLogMailer()
	mail.SetFailure(errors.New("provider unavailable"))
	services.InitMailer(mail)
	t.Cleanup(func() { services.InitMailer(nil) })

	cart := testutil.SeedCart(t, db, "retry", "r@example.com", 2*time.Hour)
	now := time.Now().UTC()
	job := testJob(now)

	stats, err := job.RunOnce(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Failed != 1 {
		t.Fatalf("stats: %+v", stats)
	}

	var got models.AbandonedCart
	db.First(&got, "id = ?", cart.ID)
	if got.Attempts != 1 || got.NextAttemptAt == nil || got.NextAttemptAt.Before(now.Add(time.Minute)) {
		t.Fatalf("retry not scheduled: attempts=%d next=%v", got.Attempts, got.NextAttemptAt)
	}

	// Backoff has not elapsed.
	stats, err = job.RunOnce(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Claimed != 0 {
		t.Fatalf("cart claimed during backoff: %+v", stats)
	}
}

func TestDueCondition(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cond, args := dueCondition([]time.Duration{time.Hour, 2 * time.Hour}, now)
	want := "((reminders_sent = ? AND last_activity_at <= ?) OR (reminders_sent = ? AND last_activity_at <= ?))"
	if cond != want {
		t.Fatalf("cond: %s", cond)
	}
	if len(args) != 4 || args[0] != 0 || !args[3].(time.Time).Equal(now.Add(-2*time.Hour)) {
		t.Fatalf("args: %v", args)
	}
}
