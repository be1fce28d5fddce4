package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/realtime"
	"gorm.io/gorm"
)

// ReminderPolicy controls when reminder waves go out and how failed sends
// back off.
type ReminderPolicy struct {
	Waves       []time.Duration
	MaxAttempts int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

func DefaultReminderPolicy() ReminderPolicy {
	waves := config.App.CartReminderWaves
	if len(waves) == 0 {
		waves = []time.Duration{time.Hour, 24 * time.Hour, 72 * time.Hour}
	}
	return ReminderPolicy{
		Waves:       waves,
		MaxAttempts: 5,
		BaseBackoff: time.Minute,
		MaxBackoff:  time.Hour,
	}
}

// Backoff is min(base·2^attempts, max).
func (p ReminderPolicy) Backoff(attempts int) time.Duration {
	d := p.BaseBackoff
	for i := 0; i < attempts; i++ {
		d *= 2
		if d >= p.MaxBackoff {
			return p.MaxBackoff
		}
	}
	return d
}

// DueAt reports when the next wave of cart is due. ok is false once every
// wave has been sent.
func (p ReminderPolicy) DueAt(cart *models.AbandonedCart) (due time.Time, ok bool) {
	if cart.RemindersSent >= len(p.Waves) {
		return time.Time{}, false
	}
	due = cart.LastActivityAt.Add(p.Waves[cart.RemindersSent])
	if cart.NextAttemptAt != nil && cart.NextAttemptAt.After(due) {
		due = *cart.NextAttemptAt
	}
	return due, true
}

// NewRecoveryToken returns a random URL-safe token and the hash stored for it.
func NewRecoveryToken() (token, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	token = base64.RawURLEncoding.EncodeToString(buf)
	return token, HashRecoveryToken(token), nil
}

func HashRecoveryToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func RecoveryURL(token string) string {
	return config.GetFrontendURL() + "/cart/recover/" + token
}

// DeliverCartReminder sends the next wave for cart and records the outcome.
// The returned error is the delivery error, already recorded on the cart.
func DeliverCartReminder(ctx context.Context, cart *models.AbandonedCart, policy ReminderPolicy, now time.Time) error {
	if cart.CustomerEmail == "" {
		return NewValidationError("customer_email", "cart has no email address")
	}

	token, hash, err := NewRecoveryToken()
	if err != nil {
		return err
	}
	wave := cart.RemindersSent + 1
	sendErr := GetMailer().Send(ctx, CartReminderEmail(cart, wave, RecoveryURL(token)))

	db := config.DB.WithContext(ctx)
	open := db.Model(&models.AbandonedCart{}).Where("id = ? AND status IN ?", cart.ID, models.OpenCartStatuses)

	if sendErr == nil {
		updates := map[string]any{
			"reminders_sent":      cart.RemindersSent + 1,
			"last_reminded_at":    now,
			"status":              models.CartStatusReminded,
			"attempts":            0,
			"next_attempt_at":     nil,
			"last_error":          "",
			"recovery_token_hash": hash,
		}
		if err := open.Updates(updates).Error; err != nil {
			return err
		}
		cart.RemindersSent++
		cart.LastRemindedAt = &now
		cart.Status = models.CartStatusReminded
		cart.Attempts = 0
		cart.NextAttemptAt = nil
		cart.LastError = ""
		cart.RecoveryTokenHash = hash

		GetBroadcaster().Emit(ctx, realtime.EventCartReminded, map[string]any{"id": cart.ID, "wave": wave}, realtime.ChannelAdminCarts)
		config.Log.Info("[cart.reminder] sent", "cart_id", cart.ID, "wave", wave)
		return nil
	}

	attempts := cart.Attempts + 1
	updates := map[string]any{
		"attempts":   attempts,
		"last_error": truncate(sendErr.Error(), 500),
	}
	if attempts >= policy.MaxAttempts {
		updates["status"] = models.CartStatusUndeliverable
		updates["next_attempt_at"] = nil
		cart.Status = models.CartStatusUndeliverable
		cart.NextAttemptAt = nil
	} else {
		next := now.Add(policy.Backoff(attempts))
		updates["next_attempt_at"] = next
		cart.NextAttemptAt = &next
	}
	if err := open.Updates(updates).Error; err != nil {
		return err
	}
	cart.Attempts = attempts
	cart.LastError = updates["last_error"].(string)

	config.Log.Warn("[cart.reminder] send failed", "cart_id", cart.ID, "wave", wave, "attempts", attempts, "error", sendErr)
	return sendErr
}

// RemindCartNow sends the next wave immediately, ignoring its schedule.
func RemindCartNow(ctx context.Context, id uuid.UUID) (*models.AbandonedCart, error) {
	var cart models.AbandonedCart
	if err := config.DB.WithContext(ctx).First(&cart, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !cart.IsOpen() {
		return nil, NewValidationError("status", fmt.Sprintf("cart is %s", cart.Status))
	}
	if err := DeliverCartReminder(ctx, &cart, DefaultReminderPolicy(), time.Now().UTC()); err != nil {
		return &cart, err
	}
	return &cart, nil
}

// RecoverCart resolves a recovery link. The first click is recorded.
func RecoverCart(ctx context.Context, token string) (*models.AbandonedCart, error) {
	if token == "" {
		return nil, ErrRecoveryTokenInvalid
	}
	db := config.DB.WithContext(ctx)

	var cart models.AbandonedCart
	err := db.Where("recovery_token_hash = ?", HashRecoveryToken(token)).
		Where("status IN ?", []string{models.CartStatusActive, models.CartStatusReminded, models.CartStatusUndeliverable}).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecoveryTokenInvalid
		}
		return nil, err
	}

	if cart.RecoveredClickAt == nil {
		now := time.Now().UTC()
		if err := db.Model(&cart).UpdateColumn("recovered_click_at", now).Error; err != nil {
			return nil, err
		}
		cart.RecoveredClickAt = &now
	}
	return &cart, nil
}

// MarkCartsRecovered closes the open carts of the session and of the user
// after an order was placed.
func MarkCartsRecovered(ctx context.Context, sessionID string, userID *uuid.UUID, orderID uuid.UUID) (int, error) {
	db := config.DB.WithContext(ctx)

	q := db.Where("status IN ?", models.OpenCartStatuses)
	switch {
	case sessionID != "" && userID != nil:
		q = q.Where("(session_id = ? OR user_id = ?)", sessionID, *userID)
	case sessionID != "":
		q = q.Where("session_id = ?", sessionID)
	case userID != nil:
		q = q.Where("user_id = ?", *userID)
	default:
		return 0, nil
	}

	var carts []models.AbandonedCart
	if err := q.Find(&carts).Error; err != nil {
		return 0, err
	}
	if len(carts) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	ids := make([]uuid.UUID, 0, len(carts))
	for _, c := range carts {
		ids = append(ids, c.ID)
	}
	if err := db.Model(&models.AbandonedCart{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"status":             models.CartStatusRecovered,
			"recovered_order_id": orderID,
			"recovered_at":       now,
			"next_attempt_at":    nil,
		}).Error; err != nil {
		return 0, err
	}

	for i := range carts {
		c := &carts[i]
		c.Status = models.CartStatusRecovered
		c.RecoveredOrderID = &orderID
		c.RecoveredAt = &now
		emitCartEvent(ctx, realtime.EventCartRecovered, c, map[string]any{"id": c.ID, "order_id": orderID})
	}
	config.Log.Info("[cart.recovery] carts recovered", "order_id", orderID, "count", len(carts))
	return len(carts), nil
}

// ExpireStaleCarts closes open carts idle since before cutoff.
func ExpireStaleCarts(ctx context.Context, cutoff time.Time) (int64, error) {
	res := config.DB.WithContext(ctx).Model(&models.AbandonedCart{}).
		Where("status IN ? AND last_activity_at < ?", models.OpenCartStatuses, cutoff).
		Updates(map[string]any{"status": models.CartStatusExpired, "next_attempt_at": nil})
	return res.RowsAffected, res.Error
}

// AbandonedCartStats summarizes every cart ever recorded.
func AbandonedCartStats(ctx context.Context) (models.AbandonedCartStats, error) {
	var rows []struct {
		Status string
		Count  int64
		Value  float64
	}
	var stats models.AbandonedCartStats
	if err := config.DB.WithContext(ctx).Model(&models.AbandonedCart{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(subtotal), 0) AS value").
		Group("status").
		Scan(&rows).Error; err != nil {
		return stats, err
	}

	var total int64
	for _, r := range rows {
		total += r.Count
		switch r.Status {
		case models.CartStatusActive:
			stats.Active = r.Count
			stats.ValueAtRisk += r.Value
		case models.CartStatusReminded:
			stats.Reminded = r.Count
			stats.ValueAtRisk += r.Value
		case models.CartStatusRecovered:
			stats.Recovered = r.Count
		case models.CartStatusExpired:
			stats.Expired = r.Count
		case models.CartStatusUndeliverable:
			stats.Undeliverable = r.Count
		}
	}
	stats.Open = stats.Active + stats.Reminded
	stats.ValueAtRisk = round2(stats.ValueAtRisk)
	if total > 0 {
		stats.RecoveryRate = round2(float64(stats.Recovered) / float64(total) * 100)
	}
	return stats, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
