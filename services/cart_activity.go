package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/realtime"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	CartActionCreated   = "created"
	CartActionUpdated   = "updated"
	CartActionAdopted   = "adopted"
	CartActionUnchanged = "unchanged"
	CartActionDeleted   = "deleted"
	CartActionNoop      = "noop"
)

var cartLocks = newKeyedMutex()

type CartActivityInput struct {
	SessionID string
	UserID    *uuid.UUID
	Items     []models.CartLineInput
	Customer  *models.CartCustomerInput
	Zone      string
}

type CartActivityResult struct {
	Action string
	Cart   *models.AbandonedCart
}

// RecordCartActivity reconciles a storefront cart snapshot with the open
// abandoned-cart record of the session.
func RecordCartActivity(ctx context.Context, in CartActivityInput) (*CartActivityResult, error) {
	if strings.TrimSpace(in.SessionID) == "" {
		return nil, NewValidationError("session", "missing cart session")
	}

	in.Customer = boundCustomer(in.Customer)

	unlock := cartLocks.Lock(in.SessionID)
	defer unlock()

	db := config.DB.WithContext(ctx)
	lines, err := SanitizeCartLines(ctx, db, in.Items)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	existing, err := findOpenCart(db, "session_id = ?", in.SessionID)
	if err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		if existing == nil {
			return &CartActivityResult{Action: CartActionNoop}, nil
		}
		if err := db.Delete(existing).Error; err != nil {
			return nil, err
		}
		emitCartEvent(ctx, realtime.EventCartDeleted, existing, map[string]any{"id": existing.ID})
		config.Log.Info("[cart.activity] deleted", "cart_id", existing.ID, "session_id", in.SessionID)
		return &CartActivityResult{Action: CartActionDeleted, Cart: existing}, nil
	}

	action := CartActionUpdated
	if existing == nil && in.UserID != nil {
		existing, err = findOpenCart(db, "user_id = ?", *in.UserID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			action = CartActionAdopted
		}
	}

	if existing == nil {
		cart := &models.AbandonedCart{
			SessionID:      in.SessionID,
			UserID:         in.UserID,
			Status:         models.CartStatusActive,
			LastActivityAt: now,
		}
		applySnapshot(cart, lines, in.Customer, in.Zone)

		err := db.Create(cart).Error
		if err == nil {
			emitCartEvent(ctx, realtime.EventCartUpdated, cart, cart)
			config.Log.Info("[cart.activity] created", "cart_id", cart.ID, "session_id", in.SessionID, "lines", len(lines))
			return &CartActivityResult{Action: CartActionCreated, Cart: cart}, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		// Another instance created the open cart first; update it instead.
		existing, err = findOpenCart(db, "session_id = ?", in.SessionID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrConflict
		}
	}

	changed := action == CartActionAdopted ||
		existing.SessionID != in.SessionID ||
		!sameLines(existing.Lines, lines) ||
		customerChanged(existing, in.Customer, in.Zone) ||
		(in.UserID != nil && (existing.UserID == nil || *existing.UserID != *in.UserID))

	if !changed {
		if err := db.Model(existing).UpdateColumn("last_activity_at", now).Error; err != nil {
			return nil, err
		}
		existing.LastActivityAt = now
		return &CartActivityResult{Action: CartActionUnchanged, Cart: existing}, nil
	}

	existing.SessionID = in.SessionID
	if in.UserID != nil {
		existing.UserID = in.UserID
	}
	if existing.Status == models.CartStatusReminded {
		existing.Status = models.CartStatusActive
	}
	existing.LastActivityAt = now
	applySnapshot(existing, lines, in.Customer, in.Zone)

	if err := db.Save(existing).Error; err != nil {
		return nil, err
	}
	emitCartEvent(ctx, realtime.EventCartUpdated, existing, existing)
	config.Log.Info("[cart.activity] "+action, "cart_id", existing.ID, "session_id", in.SessionID, "lines", len(lines))
	return &CartActivityResult{Action: action, Cart: existing}, nil
}

// GetOpenCart returns the open cart of the session, or nil.
func GetOpenCart(ctx context.Context, sessionID string) (*models.AbandonedCart, error) {
	return findOpenCart(config.DB.WithContext(ctx), "session_id = ?", sessionID)
}

func findOpenCart(db *gorm.DB, cond string, arg any) (*models.AbandonedCart, error) {
	var cart models.AbandonedCart
	err := db.Where(cond, arg).
		Where("status IN ?", models.OpenCartStatuses).
		Order("last_activity_at DESC").
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func applySnapshot(cart *models.AbandonedCart, lines []models.CartLine, customer *models.CartCustomerInput, zone string) {
	cart.Lines = datatypes.JSONSlice[models.CartLine](lines)
	cart.ItemCount = 0
	var subtotal float64
	for _, l := range lines {
		cart.ItemCount += l.Quantity
		subtotal += l.LineTotal
	}
	cart.Subtotal = round2(subtotal)

	if customer != nil {
		if v := strings.TrimSpace(customer.Name); v != "" {
			cart.CustomerName = v
		}
		if v := NormalizeEmail(customer.Email); v != "" {
			cart.CustomerEmail = v
		}
		if v := strings.TrimSpace(customer.Phone); v != "" {
			cart.CustomerPhone = v
		}
	}
	if models.ValidZone(zone) {
		cart.Zone = zone
	}
}

const (
	customerNameMax  = 255
	customerEmailMax = 255
	customerPhoneMax = 50
)

// boundCustomer trims the contact fields to what abandoned_carts can hold.
// Names are cut; an oversized email or phone is useless cut, so it is dropped.
func boundCustomer(c *models.CartCustomerInput) *models.CartCustomerInput {
	if c == nil {
		return nil
	}
	out := &models.CartCustomerInput{
		Name:  clipRunes(strings.TrimSpace(c.Name), customerNameMax),
		Email: strings.TrimSpace(c.Email),
		Phone: strings.TrimSpace(c.Phone),
	}
	if utf8.RuneCountInString(out.Email) > customerEmailMax {
		out.Email = ""
	}
	if utf8.RuneCountInString(out.Phone) > customerPhoneMax {
		out.Phone = ""
	}
	return out
}

func clipRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func sameLines(a []models.CartLine, b []models.CartLine) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ItemID != b[i].ItemID ||
			a[i].Quantity != b[i].Quantity ||
			a[i].Size != b[i].Size ||
			a[i].Color != b[i].Color ||
			a[i].UnitPrice != b[i].UnitPrice {
			return false
		}
	}
	return true
}

func customerChanged(cart *models.AbandonedCart, customer *models.CartCustomerInput, zone string) bool {
	if models.ValidZone(zone) && zone != cart.Zone {
		return true
	}
	if customer == nil {
		return false
	}
	if v := strings.TrimSpace(customer.Name); v != "" && v != cart.CustomerName {
		return true
	}
	if v := NormalizeEmail(customer.Email); v != "" && v != cart.CustomerEmail {
		return true
	}
	if v := strings.TrimSpace(customer.Phone); v != "" && v != cart.CustomerPhone {
		return true
	}
	return false
}

// cartChannels lists every channel interested in cart.
func cartChannels(cart *models.AbandonedCart) []string {
	channels := []string{realtime.SessionChannel(cart.SessionID)}
	if cart.UserID != nil {
		channels = append(channels, realtime.UserChannel(*cart.UserID))
	}
	return append(channels, realtime.ChannelAdminCarts)
}

func emitCartEvent(ctx context.Context, event string, cart *models.AbandonedCart, data any) {
	GetBroadcaster().Emit(ctx, event, data, cartChannels(cart)...)
}
