package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"gorm.io/gorm"
)

const (
	MaxCartLines    = 50
	MaxLineQuantity = 99

	// maxSnapshotInputs bounds how many raw lines a snapshot may carry before
	// merging; the rest are ignored.
	maxSnapshotInputs = 4 * MaxCartLines
)

type lineKey struct {
	itemID uuid.UUID
	size   string
	color  string
}

type parsedLine struct {
	key      lineKey
	quantity int
}

func loadActiveItems(ctx context.Context, db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]models.Item, error) {
	out := make(map[uuid.UUID]models.Item, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var items []models.Item
	if err := db.WithContext(ctx).
		Where("id IN ? AND status = ?", ids, models.ItemStatusActive).
		Find(&items).Error; err != nil {
		return nil, err
	}
	for _, it := range items {
		out[it.ID] = it
	}
	return out, nil
}

// mergeLines folds duplicate (item, size, color) lines together, keeping the
// order in which each key first appeared.
func mergeLines(lines []parsedLine) []parsedLine {
	idx := make(map[lineKey]int, len(lines))
	out := make([]parsedLine, 0, len(lines))
	for _, l := range lines {
		if i, ok := idx[l.key]; ok {
			out[i].quantity += l.quantity
			continue
		}
		idx[l.key] = len(out)
		out = append(out, l)
	}
	return out
}

func clampQuantity(qty, stock int) int {
	if qty > MaxLineQuantity {
		qty = MaxLineQuantity
	}
	if stock > 0 && qty > stock {
		qty = stock
	}
	if qty < 1 {
		qty = 1
	}
	return qty
}

// SanitizeCartLines turns untrusted storefront lines into priced snapshot
// lines. Lines that cannot be trusted are dropped rather than rejected.
func SanitizeCartLines(ctx context.Context, db *gorm.DB, inputs []models.CartLineInput) ([]models.CartLine, error) {
	if len(inputs) > maxSnapshotInputs {
		inputs = inputs[:maxSnapshotInputs]
	}
	parsed := make([]parsedLine, 0, len(inputs))
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		id, err := uuid.Parse(strings.TrimSpace(in.ItemID))
		if err != nil || id == uuid.Nil || in.Quantity <= 0 {
			continue
		}
		parsed = append(parsed, parsedLine{
			key:      lineKey{itemID: id, size: strings.TrimSpace(in.Size), color: strings.TrimSpace(in.Color)},
			quantity: in.Quantity,
		})
		ids = append(ids, id)
	}
	if len(parsed) == 0 {
		return []models.CartLine{}, nil
	}

	items, err := loadActiveItems(ctx, db, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.CartLine, 0, len(parsed))
	for _, l := range mergeLines(parsed) {
		item, ok := items[l.key.itemID]
		if !ok {
			continue
		}
		qty := clampQuantity(l.quantity, item.Stock)
		out = append(out, models.CartLine{
			ItemID:    item.ID,
			Name:      item.Name,
			Slug:      item.Slug,
			Image:     item.PrimaryImage(),
			UnitPrice: item.Price,
			Quantity:  qty,
			Size:      l.key.size,
			Color:     l.key.color,
			LineTotal: round2(item.Price * float64(qty)),
		})
		if len(out) == MaxCartLines {
			break
		}
	}
	return out, nil
}

// PriceOrderLines prices checkout lines strictly: any unknown or inactive
// item fails the whole request.
func PriceOrderLines(ctx context.Context, db *gorm.DB, inputs []models.CartLineInput) ([]QuoteLine, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyCart
	}
	if len(inputs) > MaxCartLines {
		return nil, NewValidationError("items", "too many lines")
	}

	parsed := make([]parsedLine, 0, len(inputs))
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		id, err := uuid.Parse(strings.TrimSpace(in.ItemID))
		if err != nil {
			return nil, &ItemError{ItemID: in.ItemID, Err: ErrItemUnavailable}
		}
		if in.Quantity < 1 || in.Quantity > MaxLineQuantity {
			return nil, NewValidationError("items", "quantity must be between 1 and 99")
		}
		parsed = append(parsed, parsedLine{
			key:      lineKey{itemID: id, size: strings.TrimSpace(in.Size), color: strings.TrimSpace(in.Color)},
			quantity: in.Quantity,
		})
		ids = append(ids, id)
	}

	items, err := loadActiveItems(ctx, db, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]QuoteLine, 0, len(parsed))
	for _, l := range mergeLines(parsed) {
		if l.quantity > MaxLineQuantity {
			return nil, NewValidationError("items", "quantity must be between 1 and 99")
		}
		item, ok := items[l.key.itemID]
		if !ok {
			return nil, &ItemError{ItemID: l.key.itemID.String(), Err: ErrItemUnavailable}
		}
		lines = append(lines, QuoteLine{
			ItemID:    item.ID,
			Name:      item.Name,
			Image:     item.PrimaryImage(),
			Size:      l.key.size,
			Color:     l.key.color,
			UnitPrice: item.Price,
			Quantity:  l.quantity,
		})
	}
	return lines, nil
}

func linesSubtotal(lines []QuoteLine) float64 {
	var s float64
	for _, l := range lines {
		s += round2(l.UnitPrice * float64(l.Quantity))
	}
	return round2(s)
}

// QuoteCart prices a checkout cart from the database the same way PlaceOrder
// does, without reserving anything.
func QuoteCart(ctx context.Context, req models.QuoteRequest) (Quote, error) {
	if !models.ValidZone(req.Zone) {
		return Quote{}, NewValidationError("zone", "unknown delivery zone")
	}
	db := config.DB.WithContext(ctx)
	lines, err := PriceOrderLines(ctx, db, req.Items)
	if err != nil {
		return Quote{}, err
	}
	settings, err := LoadShippingSettings(ctx, db)
	if err != nil {
		return Quote{}, err
	}

	var coupon *models.Coupon
	if strings.TrimSpace(req.CouponCode) != "" {
		coupon, err = FindValidCoupon(ctx, db, req.CouponCode, linesSubtotal(lines))
		if err != nil {
			return Quote{}, err
		}
	}
	return CalculateQuote(lines, req.Zone, coupon, settings, config.App.TaxRate)
}
