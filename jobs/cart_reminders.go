package jobs

import (
	"context"
	"strings"
	"time"

	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartReminderOptions struct {
	Interval  time.Duration
	BatchSize int
	Lease     time.Duration
	Expiry    time.Duration
	Policy    services.ReminderPolicy
}

func DefaultCartReminderOptions() CartReminderOptions {
	interval := config.App.CartReminderInterval
	if interval <= 0 {
		interval = time.Minute
	}
	expiry := config.App.CartExpiry
	if expiry <= 0 {
		expiry = 30 * 24 * time.Hour
	}
	return CartReminderOptions{
		Interval:  interval,
		BatchSize: 25,
		Lease:     5 * time.Minute,
		Expiry:    expiry,
		Policy:    services.DefaultReminderPolicy(),
	}
}

// CartReminderJob sends abandoned-cart reminder waves and expires stale carts.
type CartReminderJob struct {
	opts CartReminderOptions
	now  func() time.Time
}

func NewCartReminderJob(opts CartReminderOptions) *CartReminderJob {
	return &CartReminderJob{opts: opts, now: func() time.Time { return time.Now().UTC() }}
}

type RunStats struct {
	Claimed int
	Sent    int
	Failed  int
	Expired int64
}

// Start ticks until ctx is cancelled.
func (j *CartReminderJob) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(j.opts.Interval)
		defer ticker.Stop()
		config.Log.Info("[jobs.cart-reminders] started", "interval", j.opts.Interval.String(), "waves", len(j.opts.Policy.Waves))
		for {
			select {
			case <-ctx.Done():
				config.Log.Info("[jobs.cart-reminders] stopped")
				return
			case <-ticker.C:
				stats, err := j.RunOnce(ctx)
				if err != nil {
					config.Log.Warn("[jobs.cart-reminders] run failed", "error", err)
					continue
				}
				if stats.Claimed > 0 || stats.Expired > 0 {
					config.Log.Info("[jobs.cart-reminders] run complete",
						"claimed", stats.Claimed, "sent", stats.Sent, "failed", stats.Failed, "expired", stats.Expired)
				}
			}
		}
	}()
}

// RunOnce expires stale carts, then claims and delivers one batch of due waves.
func (j *CartReminderJob) RunOnce(ctx context.Context) (RunStats, error) {
	var stats RunStats
	now := j.now()

	expired, err := services.ExpireStaleCarts(ctx, now.Add(-j.opts.Expiry))
	if err != nil {
		return stats, err
	}
	stats.Expired = expired

	carts, err := j.claim(ctx, now)
	if err != nil {
		return stats, err
	}
	stats.Claimed = len(carts)

	for i := range carts {
		if ctx.Err() != nil {
			break
		}
		if err := services.DeliverCartReminder(ctx, &carts[i], j.opts.Policy, now); err != nil {
			stats.Failed++
			continue
		}
		stats.Sent++
	}
	return stats, nil
}

// dueCondition matches carts whose next wave is due at now: for every wave i,
// reminders_sent = i and last_activity_at <= now - waves[i].
func dueCondition(waves []time.Duration, now time.Time) (string, []any) {
	parts := make([]string, 0, len(waves))
	args := make([]any, 0, 2*len(waves))
	for i, w := range waves {
		parts = append(parts, "(reminders_sent = ? AND last_activity_at <= ?)")
		args = append(args, i, now.Add(-w))
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// claim locks due carts and pushes next_attempt_at out by the lease so other
// instances skip them while this one sends.
func (j *CartReminderJob) claim(ctx context.Context, now time.Time) ([]models.AbandonedCart, error) {
	if len(j.opts.Policy.Waves) == 0 {
		return nil, nil
	}
	cond, args := dueCondition(j.opts.Policy.Waves, now)

	var carts []models.AbandonedCart
	err := config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("status IN ?", models.OpenCartStatuses).
			Where("customer_email <> ''").
			Where("reminders_sent < ?", len(j.opts.Policy.Waves)).
			Where("(next_attempt_at IS NULL OR next_attempt_at <= ?)", now).
			Where(cond, args...).
			Order("last_activity_at ASC").
			Limit(j.opts.BatchSize)
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
		}
		if err := q.Find(&carts).Error; err != nil {
			return err
		}
		if len(carts) == 0 {
			return nil
		}

		ids := make([]any, 0, len(carts))
		for _, c := range carts {
			ids = append(ids, c.ID)
		}
		return tx.Model(&models.AbandonedCart{}).
			Where("id IN ?", ids).
			UpdateColumn("next_attempt_at", now.Add(j.opts.Lease)).Error
	})
	if err != nil {
		return nil, err
	}
	return carts, nil
}
