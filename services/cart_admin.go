package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/realtime"
	"github.com/online-bazar/bazar-backend/utils"
	"gorm.io/gorm"
)

func ListAbandonedCarts(ctx context.Context, f models.AbandonedCartFilter) ([]models.AbandonedCart, int64, int, int, error) {
	page, limit, offset := utils.NormalizePage(f.Page, f.Limit, utils.MaxPageSize)
	start, end, err := parseDayBounds(f.From, f.To)
	if err != nil {
		return nil, 0, page, limit, err
	}

	q := config.DB.WithContext(ctx).Model(&models.AbandonedCart{})
	switch f.Status {
	case "":
	case "open":
		q = q.Where("status IN ?", models.OpenCartStatuses)
	default:
		q = q.Where("status = ?", f.Status)
	}
	if f.HasEmail != nil {
		if *f.HasEmail {
			q = q.Where("customer_email <> ''")
		} else {
			q = q.Where("(customer_email = '' OR customer_email IS NULL)")
		}
	}
	if start != nil {
		q = q.Where("last_activity_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("last_activity_at < ?", *end)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, page, limit, err
	}
	var carts []models.AbandonedCart
	if err := q.Order("last_activity_at DESC").Limit(limit).Offset(offset).Find(&carts).Error; err != nil {
		return nil, 0, page, limit, err
	}
	return carts, total, page, limit, nil
}

func GetAbandonedCart(ctx context.Context, id uuid.UUID) (*models.AbandonedCart, error) {
	var cart models.AbandonedCart
	if err := config.DB.WithContext(ctx).First(&cart, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

func DeleteAbandonedCart(ctx context.Context, id uuid.UUID) (*models.AbandonedCart, error) {
	cart, err := GetAbandonedCart(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := config.DB.WithContext(ctx).Delete(cart).Error; err != nil {
		return nil, err
	}
	emitCartEvent(ctx, realtime.EventCartDeleted, cart, map[string]any{"id": cart.ID})
	return cart, nil
}
