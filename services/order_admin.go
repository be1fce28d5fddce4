package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/utils"
)

// parseDayBounds turns optional YYYY-MM-DD from/to into [from, to+1d).
func parseDayBounds(from, to string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if from != "" {
		t, err := time.Parse(reportDateLayout, from)
		if err != nil {
			return nil, nil, NewValidationError("from", "must be a date (YYYY-MM-DD)")
		}
		start = &t
	}
	if to != "" {
		t, err := time.Parse(reportDateLayout, to)
		if err != nil {
			return nil, nil, NewValidationError("to", "must be a date (YYYY-MM-DD)")
		}
		t = t.AddDate(0, 0, 1)
		end = &t
	}
	if start != nil && end != nil && !start.Before(*end) {
		return nil, nil, NewValidationError("from", "must not be after to")
	}
	return start, end, nil
}

func ListOrders(ctx context.Context, f models.OrderFilter) ([]models.Order, int64, int, int, error) {
	page, limit, offset := utils.NormalizePage(f.Page, f.Limit, utils.MaxPageSize)
	start, end, err := parseDayBounds(f.From, f.To)
	if err != nil {
		return nil, 0, page, limit, err
	}

	q := config.DB.WithContext(ctx).Model(&models.Order{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Zone != "" {
		q = q.Where("zone = ?", f.Zone)
	}
	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(order_number) LIKE ? OR LOWER(customer_name) LIKE ? OR LOWER(customer_email) LIKE ? OR customer_phone LIKE ?)", like, like, like, like)
	}
	if start != nil {
		q = q.Where("created_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("created_at < ?", *end)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, page, limit, err
	}
	var orders []models.Order
	if err := q.Preload("Items").Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		return nil, 0, page, limit, err
	}
	return orders, total, page, limit, nil
}

func ListUserOrders(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, int, int, error) {
	page, limit, offset := utils.NormalizePage(page, limit, MaxStorefrontPageSize)
	q := config.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, page, limit, err
	}
	var orders []models.Order
	if err := q.Preload("Items").Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		return nil, 0, page, limit, err
	}
	return orders, total, page, limit, nil
}
