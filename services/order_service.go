package services

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const orderNumberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewOrderNumber returns OB-YYMMDD-XXXXXX for t.
func NewOrderNumber(t time.Time) (string, error) {
	var sb strings.Builder
	sb.WriteString("OB-")
	sb.WriteString(t.UTC().Format("060102"))
	sb.WriteString("-")
	base := big.NewInt(int64(len(orderNumberAlphabet)))
	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", err
		}
		sb.WriteByte(orderNumberAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

type PlaceOrderInput struct {
	Request   models.CreateOrderRequest
	UserID    *uuid.UUID
	SessionID string
	ClientIP  string
	UserAgent string
}

type PlaceOrderResult struct {
	Order        *models.Order
	Quote        Quote
	ClientSecret string
}

// PlaceOrder prices, reserves stock, consumes the coupon and stores the order
// in one transaction, then runs the post-commit side effects.
func PlaceOrder(ctx context.Context, in PlaceOrderInput) (*PlaceOrderResult, error) {
	req := in.Request
	if !models.ValidZone(req.Zone) {
		return nil, NewValidationError("zone", "unknown delivery zone")
	}
	if req.PaymentMethod == models.PaymentMethodCard && GetPayments() == nil {
		return nil, NewValidationError("payment_method", "card payments are not available")
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var (
		order *models.Order
		quote Quote
	)
	err := config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines, err := PriceOrderLines(ctx, tx, req.Items)
		if err != nil {
			return err
		}

		settings, err := LoadShippingSettings(ctx, tx)
		if err != nil {
			return err
		}

		var coupon *models.Coupon
		if strings.TrimSpace(req.CouponCode) != "" {
			coupon, err = FindValidCoupon(ctx, tx, req.CouponCode, linesSubtotal(lines))
			if err != nil {
				return err
			}
		}

		quote, err = CalculateQuote(lines, req.Zone, coupon, settings, config.App.TaxRate)
		if err != nil {
			return err
		}

		if err := reserveStock(tx, quote.Lines); err != nil {
			return err
		}

		if coupon != nil {
			if err := ConsumeCoupon(tx, coupon.ID); err != nil {
				return err
			}
		}

		number, err := uniqueOrderNumber(tx)
		if err != nil {
			return err
		}

		order = &models.Order{
			OrderNumber:     number,
			UserID:          in.UserID,
			SessionID:       in.SessionID,
			CustomerName:    strings.TrimSpace(req.CustomerName),
			CustomerEmail:   NormalizeEmail(req.CustomerEmail),
			CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
			ShippingAddress: datatypes.NewJSONType(req.ShippingAddress),
			Zone:            req.Zone,
			Status:          models.OrderStatusPending,
			PaymentMethod:   req.PaymentMethod,
			PaymentStatus:   models.PaymentStatusUnpaid,
			Subtotal:        quote.Subtotal,
			ShippingFee:     quote.Shipping,
			Discount:        quote.Discount,
			Tax:             quote.Tax,
			Total:           quote.Total,
			Notes:           strings.TrimSpace(req.Notes),
		}
		if coupon != nil {
			order.CouponID = &coupon.ID
			order.CouponCode = coupon.Code
		}
		for _, l := range quote.Lines {
			order.Items = append(order.Items, models.OrderItem{
				ItemID:    l.ItemID,
				Name:      l.Name,
				Image:     l.Image,
				Size:      l.Size,
				Color:     l.Color,
				UnitPrice: l.UnitPrice,
				Quantity:  l.Quantity,
				LineTotal: l.LineTotal,
			})
		}
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}

	config.Log.Info("[order.place] order created", "order_number", order.OrderNumber, "total", order.Total, "items", len(order.Items))

	result := &PlaceOrderResult{Order: order, Quote: quote}
	afterOrderPlaced(ctx, in, result)
	return result, nil
}

// reserveStock decrements stock per item, locking rows in id order.
func reserveStock(tx *gorm.DB, lines []QuoteLine) error {
	need := make(map[uuid.UUID]int)
	for _, l := range lines {
		need[l.ItemID] += l.Quantity
	}
	ids := make([]uuid.UUID, 0, len(need))
	for id := range need {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	for _, id := range ids {
		res := tx.Model(&models.Item{}).
			Where("id = ? AND stock >= ?", id, need[id]).
			UpdateColumn("stock", gorm.Expr("stock - ?", need[id]))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &ItemError{ItemID: id.String(), Err: ErrInsufficientStock}
		}
	}
	return nil
}

func restoreStock(tx *gorm.DB, items []models.OrderItem) error {
	for _, it := range items {
		if err := tx.Model(&models.Item{}).
			Where("id = ?", it.ItemID).
			UpdateColumn("stock", gorm.Expr("stock + ?", it.Quantity)).Error; err != nil {
			return err
		}
	}
	return nil
}

func uniqueOrderNumber(tx *gorm.DB) (string, error) {
	for i := 0; i < 5; i++ {
		number, err := NewOrderNumber(time.Now())
		if err != nil {
			return "", err
		}
		var n int64
		if err := tx.Model(&models.Order{}).Where("order_number = ?", number).Count(&n).Error; err != nil {
			return "", err
		}
		if n == 0 {
			return number, nil
		}
	}
	return "", errors.New("could not allocate an order number")
}

func afterOrderPlaced(ctx context.Context, in PlaceOrderInput, result *PlaceOrderResult) {
	order := result.Order

	if _, err := MarkCartsRecovered(ctx, in.SessionID, in.UserID, order.ID); err != nil {
		config.Log.Warn("[order.place] failed to mark carts recovered", "order_number", order.OrderNumber, "error", err)
	}

	if order.PaymentMethod == models.PaymentMethodCard {
		if p := GetPayments(); p != nil {
			intentID, secret, err := p.CreateIntent(ctx, order)
			if err != nil {
				config.Log.Error("[order.place] failed to create payment intent", "order_number", order.OrderNumber, "error", err)
			} else {
				if err := config.DB.WithContext(ctx).Model(order).UpdateColumn("payment_intent_id", intentID).Error; err != nil {
					config.Log.Error("[order.place] failed to store payment intent", "order_number", order.OrderNumber, "error", err)
				}
				order.PaymentIntentID = &intentID
				result.ClientSecret = secret
			}
		}
	}

	if err := GetMailer().Send(ctx, OrderConfirmationEmail(order)); err != nil {
		config.Log.Warn("[order.place] confirmation email failed", "order_number", order.OrderNumber, "error", err)
	}

	if f := GetForwarder(); f != nil {
		f.Enqueue(PurchaseEvent(order, in.ClientIP, in.UserAgent))
	}
}

// ═══════════════════════════════════════════════════════════
// Status transitions
// ═══════════════════════════════════════════════════════════

var orderTransitions = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed:  {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
}

func CanTransition(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// TransitionOrder moves an order along the status table. Cancelling needs a
// reason and gives back stock and the coupon use.
func TransitionOrder(ctx context.Context, orderID uuid.UUID, to, reason string) (*models.Order, error) {
	to = strings.ToLower(strings.TrimSpace(to))
	reason = strings.TrimSpace(reason)
	if to == models.OrderStatusCancelled && reason == "" {
		return nil, ErrReasonRequired
	}

	var order models.Order
	err := config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return applyTransition(tx, &order, to, reason)
	})
	if err != nil {
		return nil, err
	}

	config.Log.Info("[order.status] transitioned", "order_number", order.OrderNumber, "status", order.Status)
	if err := GetMailer().Send(ctx, OrderStatusEmail(&order)); err != nil {
		config.Log.Warn("[order.status] status email failed", "order_number", order.OrderNumber, "error", err)
	}
	return &order, nil
}

func applyTransition(tx *gorm.DB, order *models.Order, to, reason string) error {
	if !CanTransition(order.Status, to) {
		return ErrInvalidTransition
	}

	now := time.Now().UTC()
	updates := map[string]any{"status": to}
	switch to {
	case models.OrderStatusConfirmed:
		updates["confirmed_at"] = now
		order.ConfirmedAt = &now
	case models.OrderStatusProcessing:
		updates["processing_at"] = now
		order.ProcessingAt = &now
	case models.OrderStatusShipped:
		updates["shipped_at"] = now
		order.ShippedAt = &now
	case models.OrderStatusDelivered:
		updates["delivered_at"] = now
		order.DeliveredAt = &now
		if order.PaymentMethod == models.PaymentMethodCOD {
			updates["payment_status"] = models.PaymentStatusPaid
			order.PaymentStatus = models.PaymentStatusPaid
		}
	case models.OrderStatusCancelled:
		updates["cancelled_at"] = now
		updates["cancel_reason"] = reason
		order.CancelledAt = &now
		order.CancelReason = reason
		if err := restoreStock(tx, order.Items); err != nil {
			return err
		}
		if order.CouponID != nil {
			if err := ReleaseCoupon(tx, *order.CouponID); err != nil {
				return err
			}
		}
	}

	res := tx.Model(&models.Order{}).Where("id = ? AND status = ?", order.ID, order.Status).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidTransition
	}
	order.Status = to
	return nil
}

// CancelOwnOrder lets a customer cancel an order that is still pending.
func CancelOwnOrder(ctx context.Context, userID, orderID uuid.UUID, reason string) (*models.Order, error) {
	var order models.Order
	if err := config.DB.WithContext(ctx).Select("id", "user_id", "status").First(&order, "id = ? AND user_id = ?", orderID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, ErrInvalidTransition
	}
	return TransitionOrder(ctx, orderID, models.OrderStatusCancelled, reason)
}

// ═══════════════════════════════════════════════════════════
// Payments
// ═══════════════════════════════════════════════════════════

// MarkOrderPaid records a successful card payment and confirms a pending order.
func MarkOrderPaid(ctx context.Context, intentID string) (*models.Order, error) {
	var order models.Order
	err := config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Preload("Items").First(&order, "payment_intent_id = ?", intentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if order.PaymentStatus == models.PaymentStatusPaid {
			return nil
		}
		if err := tx.Model(&order).UpdateColumn("payment_status", models.PaymentStatusPaid).Error; err != nil {
			return err
		}
		order.PaymentStatus = models.PaymentStatusPaid
		if order.Status == models.OrderStatusPending {
			return applyTransition(tx, &order, models.OrderStatusConfirmed, "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func MarkOrderPaymentFailed(ctx context.Context, intentID string) error {
	res := config.DB.WithContext(ctx).Model(&models.Order{}).
		Where("payment_intent_id = ? AND payment_status <> ?", intentID, models.PaymentStatusPaid).
		UpdateColumn("payment_status", models.PaymentStatusFailed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ═══════════════════════════════════════════════════════════
// Lookups
// ═══════════════════════════════════════════════════════════

func GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := config.DB.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func GetUserOrder(ctx context.Context, userID, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := config.DB.WithContext(ctx).Preload("Items").First(&order, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// TrackOrder finds a guest order by number and the email it was placed with.
func TrackOrder(ctx context.Context, number, email string) (*models.Order, error) {
	number = strings.ToUpper(strings.TrimSpace(number))
	email = NormalizeEmail(email)
	if number == "" || email == "" {
		return nil, NewValidationError("number", "order number and email are required")
	}
	var order models.Order
	if err := config.DB.WithContext(ctx).Preload("Items").
		First(&order, "order_number = ? AND customer_email = ?", number, email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}
