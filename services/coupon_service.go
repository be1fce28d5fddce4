package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/utils"
	"gorm.io/gorm"
)

func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CheckCoupon applies the validity rules in order: active, window, usage,
// minimum order.
func CheckCoupon(c *models.Coupon, subtotal float64, now time.Time) error {
	if !c.Active {
		return ErrCouponInactive
	}
	if c.StartsAt != nil && now.Before(*c.StartsAt) {
		return ErrCouponNotStarted
	}
	if c.EndsAt != nil && !now.Before(*c.EndsAt) {
		return ErrCouponExpired
	}
	if c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit {
		return ErrCouponExhausted
	}
	if c.MinOrderAmount > 0 && subtotal < c.MinOrderAmount {
		return ErrCouponMinimum
	}
	return nil
}

// FindValidCoupon loads code and checks it against subtotal.
func FindValidCoupon(ctx context.Context, db *gorm.DB, code string, subtotal float64) (*models.Coupon, error) {
	code = NormalizeCouponCode(code)
	if code == "" {
		return nil, ErrCouponNotFound
	}
	var c models.Coupon
	if err := db.WithContext(ctx).Where("code = ?", code).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	if err := CheckCoupon(&c, subtotal, time.Now()); err != nil {
		return nil, err
	}
	return &c, nil
}

// ConsumeCoupon takes one use of the coupon. The conditional update keeps
// used_count within usage_limit under concurrent checkouts.
func ConsumeCoupon(tx *gorm.DB, couponID uuid.UUID) error {
	res := tx.Model(&models.Coupon{}).
		Where("id = ? AND (usage_limit = 0 OR used_count < usage_limit)", couponID).
		Update("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCouponExhausted
	}
	return nil
}

func ReleaseCoupon(tx *gorm.DB, couponID uuid.UUID) error {
	return tx.Model(&models.Coupon{}).
		Where("id = ? AND used_count > 0", couponID).
		Update("used_count", gorm.Expr("used_count - 1")).Error
}

func CreateCoupon(ctx context.Context, req models.CouponRequest) (*models.Coupon, error) {
	if req.StartsAt != nil && req.EndsAt != nil && !req.EndsAt.After(*req.StartsAt) {
		return nil, NewValidationError("ends_at", "must be after starts_at")
	}
	if req.Type == models.CouponPercent && req.Value > 100 {
		return nil, NewValidationError("value", "percent coupons cannot exceed 100")
	}
	c := &models.Coupon{
		Code:           NormalizeCouponCode(req.Code),
		Description:    req.Description,
		Type:           req.Type,
		Value:          req.Value,
		MinOrderAmount: req.MinOrderAmount,
		MaxDiscount:    req.MaxDiscount,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		UsageLimit:     req.UsageLimit,
		Active:         req.Active == nil || *req.Active,
	}
	if err := config.DB.WithContext(ctx).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return c, nil
}

func UpdateCoupon(ctx context.Context, id uuid.UUID, req models.UpdateCouponRequest) (*models.Coupon, error) {
	var c models.Coupon
	if err := config.DB.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Type != nil {
		c.Type = *req.Type
	}
	if req.Value != nil {
		c.Value = *req.Value
	}
	if req.MinOrderAmount != nil {
		c.MinOrderAmount = *req.MinOrderAmount
	}
	if req.MaxDiscount != nil {
		c.MaxDiscount = *req.MaxDiscount
	}
	if req.StartsAt != nil {
		c.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		c.EndsAt = req.EndsAt
	}
	if req.UsageLimit != nil {
		c.UsageLimit = *req.UsageLimit
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	if c.Type == models.CouponPercent && c.Value > 100 {
		return nil, NewValidationError("value", "percent coupons cannot exceed 100")
	}
	if c.StartsAt != nil && c.EndsAt != nil && !c.EndsAt.After(*c.StartsAt) {
		return nil, NewValidationError("ends_at", "must be after starts_at")
	}

	if err := config.DB.WithContext(ctx).Save(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ValidateCoupon checks code for the public checkout page and reports the
// discount it would give on subtotal.
func ValidateCoupon(ctx context.Context, req models.ValidateCouponRequest) (*models.ValidateCouponResponse, error) {
	c, err := FindValidCoupon(ctx, config.DB, req.Code, req.Subtotal)
	if err != nil {
		return nil, err
	}
	return &models.ValidateCouponResponse{
		Code:         c.Code,
		Type:         c.Type,
		Discount:     CouponDiscount(c, req.Subtotal),
		FreeShipping: c.Type == models.CouponFreeShipping,
	}, nil
}

type CouponFilter struct {
	Query  string `form:"q"`
	Active *bool  `form:"active"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func ListCoupons(ctx context.Context, f CouponFilter) ([]models.Coupon, int64, int, int, error) {
	page, limit, offset := utils.NormalizePage(f.Page, f.Limit, utils.MaxPageSize)
	q := config.DB.WithContext(ctx).Model(&models.Coupon{})
	if code := NormalizeCouponCode(f.Query); code != "" {
		q = q.Where("code LIKE ?", "%"+code+"%")
	}
	if f.Active != nil {
		q = q.Where("active = ?", *f.Active)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, page, limit, err
	}
	var out []models.Coupon
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&out).Error; err != nil {
		return nil, 0, page, limit, err
	}
	return out, total, page, limit, nil
}

func GetCoupon(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	var c models.Coupon
	if err := config.DB.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// DeleteCoupon removes an unused coupon. Coupons referenced by orders must be
// deactivated instead.
func DeleteCoupon(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	c, err := GetCoupon(ctx, id)
	if err != nil {
		return nil, err
	}
	var refs int64
	if err := config.DB.WithContext(ctx).Model(&models.Order{}).Where("coupon_id = ?", id).Count(&refs).Error; err != nil {
		return nil, err
	}
	if refs > 0 {
		return nil, fmt.Errorf("%w: coupon is used by %d orders, deactivate it instead", ErrConflict, refs)
	}
	if err := config.DB.WithContext(ctx).Delete(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}
