package services

import (
	"math"

	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/models"
)

type QuoteLine struct {
	ItemID    uuid.UUID `json:"item_id"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	Size      string    `json:"size,omitempty"`
	Color     string    `json:"color,omitempty"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	LineTotal float64   `json:"line_total"`
}

type Quote struct {
	Lines        []QuoteLine `json:"lines"`
	Zone         string      `json:"zone"`
	Subtotal     float64     `json:"subtotal"`
	Shipping     float64     `json:"shipping"`
	Discount     float64     `json:"discount"`
	Tax          float64     `json:"tax"`
	Total        float64     `json:"total"`
	CouponCode   string      `json:"coupon_code,omitempty"`
	FreeShipping bool        `json:"free_shipping"`
	Currency     string      `json:"currency"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateQuote prices lines for zone. coupon may be nil and is assumed to be
// already validated.
func CalculateQuote(lines []QuoteLine, zone string, coupon *models.Coupon, settings models.ShippingSettings, taxRate float64) (Quote, error) {
	fee, ok := settings.FeeFor(zone)
	if !ok {
		return Quote{}, NewValidationError("zone", "unknown delivery zone")
	}

	q := Quote{Zone: zone, Currency: models.Currency, Lines: make([]QuoteLine, 0, len(lines))}
	for _, l := range lines {
		l.LineTotal = round2(l.UnitPrice * float64(l.Quantity))
		q.Subtotal += l.LineTotal
		q.Lines = append(q.Lines, l)
	}
	q.Subtotal = round2(q.Subtotal)

	q.Shipping = fee
	if settings.FreeShippingThreshold > 0 && q.Subtotal >= settings.FreeShippingThreshold {
		q.Shipping = 0
		q.FreeShipping = true
	}

	if coupon != nil {
		q.CouponCode = coupon.Code
		q.Discount = CouponDiscount(coupon, q.Subtotal)
		if coupon.Type == models.CouponFreeShipping {
			q.Shipping = 0
			q.FreeShipping = true
		}
	}
	q.Shipping = round2(q.Shipping)

	if taxRate > 0 {
		q.Tax = round2((q.Subtotal - q.Discount) * taxRate)
	}
	q.Total = round2(q.Subtotal - q.Discount + q.Shipping + q.Tax)
	return q, nil
}

// CouponDiscount is the amount coupon takes off subtotal, never more than the
// subtotal itself.
func CouponDiscount(coupon *models.Coupon, subtotal float64) float64 {
	var d float64
	switch coupon.Type {
	case models.CouponPercent:
		d = subtotal * coupon.Value / 100
		if coupon.MaxDiscount > 0 && d > coupon.MaxDiscount {
			d = coupon.MaxDiscount
		}
	case models.CouponFixed:
		d = coupon.Value
	}
	if d > subtotal {
		d = subtotal
	}
	if d < 0 {
		d = 0
	}
	return round2(d)
}
