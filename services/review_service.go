package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/online-bazar/bazar-backend/config"
	"github.com/online-bazar/bazar-backend/models"
	"github.com/online-bazar/bazar-backend/utils"
	"gorm.io/gorm"
)

// hasDeliveredItem reports whether the user received item in any order.
func hasDeliveredItem(db *gorm.DB, userID, itemID uuid.UUID) (bool, error) {
	var n int64
	err := db.Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.status = ? AND order_items.item_id = ?", userID, models.OrderStatusDelivered, itemID).
		Count(&n).Error
	return n > 0, err
}

// RecomputeItemRating refreshes rating_avg and rating_count from approved reviews.
func RecomputeItemRating(db *gorm.DB, itemID uuid.UUID) error {
	var agg struct {
		Avg   float64
		Count int
	}
	if err := db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("item_id = ? AND status = ?", itemID, models.ReviewStatusApproved).
		Scan(&agg).Error; err != nil {
		return err
	}
	return db.Model(&models.Item{}).Where("id = ?", itemID).UpdateColumns(map[string]any{
		"rating_avg":   round2(agg.Avg),
		"rating_count": agg.Count,
	}).Error
}

func CreateReview(ctx context.Context, user *models.User, itemSlugOrID string, req models.CreateReviewRequest) (*models.Review, error) {
	db := config.DB.WithContext(ctx)
	item, err := findItem(db, strings.TrimSpace(itemSlugOrID), true)
	if err != nil {
		return nil, err
	}

	verified, err := hasDeliveredItem(db, user.ID, item.ID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		ItemID:           item.ID,
		UserID:           user.ID,
		AuthorName:       user.Name,
		Rating:           req.Rating,
		Title:            strings.TrimSpace(req.Title),
		Body:             strings.TrimSpace(req.Body),
		VerifiedPurchase: verified,
		Status:           models.ReviewStatusPending,
	}
	if err := db.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}
	config.Log.Info("[review.create] review submitted", "item_id", item.ID, "verified", verified)
	return review, nil
}

// ListItemReviews returns approved reviews of an active item.
func ListItemReviews(ctx context.Context, itemSlugOrID string, page, limit int) ([]models.ReviewDTO, int64, int, int, error) {
	page, limit, offset := utils.NormalizePage(page, limit, MaxStorefrontPageSize)
	db := config.DB.WithContext(ctx)
	item, err := findItem(db, strings.TrimSpace(itemSlugOrID), true)
	if err != nil {
		return nil, 0, page, limit, err
	}

	q := db.Model(&models.Review{}).Where("item_id = ? AND status = ?", item.ID, models.ReviewStatusApproved)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, page, limit, err
	}
	var reviews []models.Review
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reviews).Error; err != nil {
		return nil, 0, page, limit, err
	}
	out := make([]models.ReviewDTO, 0, len(reviews))
	for i := range reviews {
		out = append(out, reviews[i].ToDTO())
	}
	return out, total, page, limit, nil
}

type ReviewFilter struct {
	Status string `form:"status"`
	ItemID string `form:"item_id"`
	Rating int    `form:"rating"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func ListReviews(ctx context.Context, f ReviewFilter) ([]models.Review, int64, int, int, error) {
	page, limit, offset := utils.NormalizePage(f.Page, f.Limit, utils.MaxPageSize)
	q := config.DB.WithContext(ctx).Model(&models.Review{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if id, err := uuid.Parse(f.ItemID); err == nil {
		q = q.Where("item_id = ?", id)
	}
	if f.Rating >= 1 && f.Rating <= 5 {
		q = q.Where("rating = ?", f.Rating)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, page, limit, err
	}
	var reviews []models.Review
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reviews).Error; err != nil {
		return nil, 0, page, limit, err
	}
	return reviews, total, page, limit, nil
}

func SetReviewStatus(ctx context.Context, id uuid.UUID, status string) (*models.Review, error) {
	var review models.Review
	err := config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&review, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Model(&review).Update("status", status).Error; err != nil {
			return err
		}
		review.Status = status
		return RecomputeItemRating(tx, review.ItemID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func DeleteReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&review, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Delete(&review).Error; err != nil {
			return err
		}
		return RecomputeItemRating(tx, review.ItemID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}
